package assets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthFolderName returns the month folder name for t, e.g. "Enero 2026".
func MonthFolderName(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}

// DayFolderName returns the unpadded day of month of t.
func DayFolderName(t time.Time) string {
	return strconv.Itoa(t.Day())
}

// CompanyUpdater persists fields onto a company record.
type CompanyUpdater interface {
	Update(ctx context.Context, id string, fields map[string]any) error
}

// HierarchyBuilder resolves the company/month/day folder an upload goes to.
type HierarchyBuilder struct {
	resolver  *Resolver
	companies CompanyUpdater
	locker    Locker
	appName   string
	location  *time.Location
	now       func() time.Time
	log       zerolog.Logger
}

// NewHierarchyBuilder wires a builder. locker may be nil.
func NewHierarchyBuilder(resolver *Resolver, companies CompanyUpdater, locker Locker, appName string, location *time.Location, log zerolog.Logger) *HierarchyBuilder {
	if location == nil {
		location = time.UTC
	}
	return &HierarchyBuilder{
		resolver:  resolver,
		companies: companies,
		locker:    locker,
		appName:   appName,
		location:  location,
		now:       time.Now,
		log:       log.With().Str("component", "folder-hierarchy").Logger(),
	}
}

// RootFolderName returns the name of the company root folder.
func (b *HierarchyBuilder) RootFolderName(c *company.Company) string {
	return b.appName + " - " + c.Name
}

// ResolveTargetFolder returns the day folder for scheduledDate (now when nil).
// Folder failures degrade instead of failing: an unusable day folder falls
// back to the root folder and an unusable root to the storage root (""). A
// stale cached root is recreated and written back onto the company.
func (b *HierarchyBuilder) ResolveTargetFolder(ctx context.Context, c *company.Company, scheduledDate *time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	date := b.now()
	if scheduledDate != nil && !scheduledDate.IsZero() {
		date = *scheduledDate
	}
	date = date.In(b.location)
	log := b.log.With().Str("company_id", c.ID).Logger()

	rootID := c.DriveRootFolderID
	if rootID == "" {
		root, err := b.provisionRoot(ctx, c)
		if err != nil {
			log.Warn().Err(err).Msg("could not provision root folder, uploading to storage root")
			return "", nil
		}
		rootID = root.ID
	}

	dayID, err := b.resolveDateFolders(ctx, c.DriveRefreshCredential, rootID, date)
	if err == nil {
		return dayID, nil
	}
	if !platformerrors.IsStaleReference(err) {
		log.Warn().Err(err).Str("root_id", rootID).Msg("could not resolve date folders, uploading to root folder")
		return rootID, nil
	}

	log.Warn().Str("stale_root_id", rootID).Msg("cached root folder is missing, recreating")
	root, err := b.provisionRoot(ctx, c)
	if err != nil {
		log.Error().Err(err).Msg("root folder recovery failed, uploading to storage root")
		return "", nil
	}

	dayID, err = b.resolveDateFolders(ctx, c.DriveRefreshCredential, root.ID, date)
	if err != nil {
		if platformerrors.IsStaleReference(err) {
			log.Error().Err(err).Msg("recreated root folder is missing, uploading to storage root")
			return "", nil
		}
		log.Warn().Err(err).Str("root_id", root.ID).Msg("could not resolve date folders, uploading to root folder")
		return root.ID, nil
	}
	return dayID, nil
}

func (b *HierarchyBuilder) resolveDateFolders(ctx context.Context, credential, rootID string, date time.Time) (string, error) {
	month, err := b.resolver.EnsureFolder(ctx, credential, MonthFolderName(date), rootID)
	if err != nil {
		return "", err
	}
	day, err := b.resolver.EnsureFolder(ctx, credential, DayFolderName(date), month.ID)
	if err != nil {
		return "", err
	}
	return day.ID, nil
}

// provisionRoot finds or creates the root folder by name and writes it through
// to the company record and c.
func (b *HierarchyBuilder) provisionRoot(ctx context.Context, c *company.Company) (Folder, error) {
	var (
		root Folder
		ran  bool
	)
	ensure := func(ctx context.Context) error {
		ran = true
		folder, err := b.resolver.EnsureFolder(ctx, c.DriveRefreshCredential, b.RootFolderName(c), "")
		if err != nil {
			return err
		}
		root = folder
		return nil
	}

	var err error
	if b.locker != nil {
		err = b.locker.WithLock(ctx, "drive-root:"+c.ID, ensure)
		if err != nil && !ran && ctx.Err() == nil {
			// Lock backend unavailable; provision unlocked.
			b.log.Warn().Err(err).Str("company_id", c.ID).Msg("could not acquire root folder lock, provisioning without it")
			err = ensure(ctx)
		}
	} else {
		err = ensure(ctx)
	}
	if err != nil {
		return Folder{}, err
	}

	c.DriveRootFolderID = root.ID
	c.DriveShareLink = root.ShareLink
	if err := b.companies.Update(ctx, c.ID, map[string]any{
		"drive_folder_id": root.ID,
		"drive_link":      root.ShareLink,
		"updatedAt":       docstore.Now(),
	}); err != nil {
		b.log.Warn().Err(err).Str("company_id", c.ID).Msg("could not persist root folder")
	}
	return root, nil
}
