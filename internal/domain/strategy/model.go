package strategy

// FullStrategy is the AI-generated content strategy stored on a company.
type FullStrategy struct {
	GeneratedAt    string               `json:"generatedAt"`
	Summary        string               `json:"summary"`
	TargetChannels []string             `json:"targetChannels"`
	Insights       []Insight            `json:"insights"`
	Pillars        []Pillar             `json:"pillars"`
	ContentIdeas   []ContentIdea        `json:"contentIdeas"`
	WeeklyCalendar []CalendarDay        `json:"weeklyCalendar"`
	KPIs           []KPITarget          `json:"kpis"`
	Roadmap        []RoadmapPhase       `json:"roadmap"`
	ContentLibrary []ContentLibraryItem `json:"contentLibrary"`
	StoriesFunnel  []StoriesFunnelPhase `json:"storiesFunnel"`
	PastUsedIdeas  []string             `json:"pastUsedIdeas,omitempty"`
}

type Insight struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
	Sub   string `json:"sub"`
}

type Pillar struct {
	Icon       string   `json:"icon"`
	Name       string   `json:"name"`
	Desc       string   `json:"desc"`
	Percentage float64  `json:"percentage"`
	Examples   []string `json:"examples"`
	Color      string   `json:"color"`
}

// ContentIdea is one planned post. It pairs by index with a ContentLibraryItem.
type ContentIdea struct {
	Idea    string `json:"idea"`
	Channel string `json:"channel"`
	Format  string `json:"format"`
	Pillar  string `json:"pillar"`
}

type CalendarPost struct {
	Time    string `json:"time,omitempty"`
	Channel string `json:"channel"`
	Type    string `json:"type"`
	Title   string `json:"title"`
}

type CalendarDay struct {
	Day   string         `json:"day"`
	Posts []CalendarPost `json:"posts"`
}

type KPITarget struct {
	Icon   string `json:"icon"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Target string `json:"target"`
}

type RoadmapPhase struct {
	Phase  string   `json:"phase"`
	Title  string   `json:"title"`
	Period string   `json:"period"`
	Items  []string `json:"items"`
	Color  string   `json:"color"`
}

type CarouselSlide struct {
	Num     string `json:"num"`
	Role    string `json:"role"`
	Text    string `json:"text"`
	Subtext string `json:"subtext,omitempty"`
	CTA     string `json:"cta,omitempty"`
	BG      string `json:"bg"`
}

type ReelScene struct {
	SceneNum    int    `json:"sceneNum"`
	TimeRange   string `json:"timeRange"`
	Phase       string `json:"phase"`
	What        string `json:"what"`
	How         string `json:"how"`
	TextOverlay string `json:"textOverlay"`
}

type EngagementTarget struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

type Script struct {
	Hook string `json:"hook"`
	Body string `json:"body"`
	CTA  string `json:"cta"`
}

// ContentLibraryItem is the fully developed script or copy for one idea.
type ContentLibraryItem struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Type             string             `json:"type"`
	Channels         []string           `json:"channels"`
	Pillar           string             `json:"pillar"`
	StrategyNote     string             `json:"strategyNote"`
	EngTargets       []EngagementTarget `json:"engTargets"`
	Slides           []CarouselSlide    `json:"slides,omitempty"`
	Duration         string             `json:"duration,omitempty"`
	Ratio            string             `json:"ratio,omitempty"`
	Music            string             `json:"music,omitempty"`
	Scenes           []ReelScene        `json:"scenes,omitempty"`
	Script           *Script            `json:"script,omitempty"`
	LinkedinPost     string             `json:"linkedinPost,omitempty"`
	LinkedinHashtags string             `json:"linkedinHashtags,omitempty"`
	Caption          string             `json:"caption"`
	Hashtags         string             `json:"hashtags"`
	IsUsed           bool               `json:"isUsed,omitempty"`
}

type StoriesFunnelPhase struct {
	Phase       string   `json:"phase"`
	Title       string   `json:"title"`
	Objective   string   `json:"objective"`
	Description string   `json:"description"`
	Days        []string `json:"days"`
	Color       string   `json:"color"`
}

// libraryType maps an idea format to the library item type.
func libraryType(format string) string {
	if format == "linkedin_post" {
		return "linkedin"
	}
	return format
}
