package company

import "time"

// Collection is the document store path for companies.
const Collection = "companies"

// UsersCollection holds per-user profiles listing owned companies.
const UsersCollection = "users"

// AI providers selectable per company.
const (
	AIProviderGemini = "gemini"
	AIProviderClaude = "claude"
	AIProviderOpenAI = "openai"
)

// Company is a client account managed by an agency user.
type Company struct {
	ID                     string            `json:"-"`
	Name                   string            `json:"name"`
	OwnerID                string            `json:"ownerId"`
	PortalToken            string            `json:"portalToken"`
	DriveRootFolderID      string            `json:"drive_folder_id,omitempty"`
	DriveShareLink         string            `json:"drive_link,omitempty"`
	DriveRefreshCredential string            `json:"drive_refresh_token,omitempty"`
	SocialConnections      SocialConnections `json:"socialConnections"`
	Settings               Settings          `json:"settings"`

	Sector         string           `json:"sector,omitempty"`
	Description    string           `json:"description,omitempty"`
	TargetAudience string           `json:"targetAudience,omitempty"`
	USP            string           `json:"usp,omitempty"`
	Tone           string           `json:"tone,omitempty"`
	Products       []ProductService `json:"products,omitempty"`
	Team           []TeamMember     `json:"team,omitempty"`
	LeadMagnets    []LeadMagnet     `json:"leadMagnets,omitempty"`

	AIStrategy map[string]any `json:"aiStrategy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SocialConnections maps platforms to their OAuth connection. A nil entry means not connected.
type SocialConnections struct {
	Instagram *InstagramConnection `json:"instagram,omitempty"`
	TikTok    *TikTokConnection    `json:"tiktok,omitempty"`
}

// InstagramConnection is a Meta business account link.
type InstagramConnection struct {
	AccessToken     string    `json:"accessToken"`
	InstagramUserID string    `json:"instagramUserId"`
	PageID          string    `json:"pageId"`
	Username        string    `json:"username,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Connected reports whether the connection carries an access token.
func (c *InstagramConnection) Connected() bool {
	return c != nil && c.AccessToken != ""
}

// TikTokConnection is a TikTok creator account link.
type TikTokConnection struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresIn    int64     `json:"expiresIn"`
	ExpiresAt    time.Time `json:"expiresAt"`
	OpenID       string    `json:"openId"`
	Username     string    `json:"username,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Connected reports whether the connection carries an access token.
func (c *TikTokConnection) Connected() bool {
	return c != nil && c.AccessToken != ""
}

// Settings holds dashboard preferences and AI context.
type Settings struct {
	AIProvider          string   `json:"aiProvider,omitempty"`
	AIAPIKey            string   `json:"aiApiKey,omitempty"`
	Website             string   `json:"website,omitempty"`
	Instagram           string   `json:"instagram,omitempty"`
	BrandColor          string   `json:"brandColor,omitempty"`
	WeeklyPostCount     int      `json:"weeklyPostCount,omitempty"`
	TargetNetworks      []string `json:"targetNetworks,omitempty"`
	ContentResources    string   `json:"contentResources,omitempty"`
	ContentPlan         string   `json:"contentPlan,omitempty"`
	ManychatAutomations string   `json:"manychatAutomations,omitempty"`
}

// ProductService is something the company sells.
type ProductService struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty" binding:"omitempty,oneof=product service info"`
}

// TeamMember is someone content can be assigned to.
type TeamMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// LeadMagnet is a keyword-triggered resource offered in captions.
type LeadMagnet struct {
	ID       string `json:"id"`
	Keyword  string `json:"keyword"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Type     string `json:"type,omitempty" binding:"omitempty,oneof=pdf checklist webinar other excel"`
}

// Member returns the team member with the given id.
func (c *Company) Member(id string) (TeamMember, bool) {
	for _, m := range c.Team {
		if m.ID == id {
			return m, true
		}
	}
	return TeamMember{}, false
}

// AIProvider returns the configured provider, defaulting to gemini.
func (c *Company) AIProvider() string {
	switch c.Settings.AIProvider {
	case AIProviderClaude, AIProviderOpenAI:
		return c.Settings.AIProvider
	default:
		return AIProviderGemini
	}
}

// Patch carries the mutable company fields. Nil fields are left untouched.
type Patch struct {
	Name           *string           `json:"name,omitempty"`
	Settings       *Settings         `json:"settings,omitempty"`
	Sector         *string           `json:"sector,omitempty"`
	Description    *string           `json:"description,omitempty"`
	TargetAudience *string           `json:"targetAudience,omitempty"`
	USP            *string           `json:"usp,omitempty"`
	Tone           *string           `json:"tone,omitempty"`
	Products       *[]ProductService `json:"products,omitempty"`
	Team           *[]TeamMember     `json:"team,omitempty"`
	LeadMagnets    *[]LeadMagnet     `json:"leadMagnets,omitempty"`
}
