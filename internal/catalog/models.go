package catalog

import (
	"math"
	"time"
)

// ProjectKind classifies what a project produces.
type ProjectKind string

const (
	ProjectKindFilm      ProjectKind = "film"
	ProjectKindMusic     ProjectKind = "music"
	ProjectKindWebseries ProjectKind = "webseries"
)

// ProjectStatus tracks where a project sits in its funding lifecycle.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// Project is an investable production listed on the storefront.
type Project struct {
	ID               string
	Title            string
	Kind             ProjectKind
	Category         string
	Status           ProjectStatus
	FundedPercentage int
	TargetAmount     int64
	RaisedAmount     int64
	PosterID         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FundedPercentage derives the funding progress from raised/target amounts.
// Target of zero reads as no progress; overfunded projects cap at 100.
func FundedPercentage(raised, target int64) int {
	if target <= 0 {
		return 0
	}
	pct := math.Round(float64(raised) / float64(target) * 100)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// StockStatus is derived from a merchandise item's stock level.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusOutOfStock StockStatus = "out-of-stock"
)

// lowStockThreshold marks the boundary between low-stock and in-stock.
const lowStockThreshold = 10

// StockStatusFor derives the displayed status from a stock level.
func StockStatusFor(level int) StockStatus {
	switch {
	case level <= 0:
		return StockStatusOutOfStock
	case level <= lowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// MerchandiseItem is physical goods sold alongside projects.
type MerchandiseItem struct {
	ID         string
	Title      string
	Category   string
	Price      int64
	StockLevel int
	Status     StockStatus
	CreatedAt  time.Time
}

// PerkTier orders investor reward levels.
type PerkTier string

const (
	PerkTierSupporter PerkTier = "supporter"
	PerkTierBacker    PerkTier = "backer"
	PerkTierProducer  PerkTier = "producer"
	PerkTierExecutive PerkTier = "executive"
)

// Perk is a reward offered at a minimum investment amount. ProjectID is a weak
// reference; the project title resolves at query time so renames never go
// stale.
type Perk struct {
	ID          string
	Title       string
	Description string
	ProjectID   string
	Tier        PerkTier
	MinAmount   int64
	CreatedAt   time.Time
}

// MediaType classifies an uploaded asset.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
)

// Dimensions records pixel dimensions for visual assets.
type Dimensions struct {
	Width  int
	Height int
}

// MediaAsset is an uploaded file, optionally attached to a project by weak
// reference.
type MediaAsset struct {
	ID         string
	Title      string
	Type       MediaType
	URL        string
	FileSize   int64
	Dimensions *Dimensions
	ProjectID  string
	Tags       []string
	CreatedAt  time.Time
}

// UserRole separates storefront visitors from back-office operators.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// UserStatus tracks account standing. Users are mutated only through status
// transitions, never general updates.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
)

// User is a storefront account visible to the back office.
type User struct {
	ID              string
	Name            string
	Email           string
	Role            UserRole
	Status          UserStatus
	InvestmentCount int
	TotalInvested   int64
	CreatedAt       time.Time
}

// UnknownProjectTitle is the fallback shown when a perk or media asset points
// at a project that no longer exists.
const UnknownProjectTitle = "Unknown Project"

// PerkView is a perk with its project reference resolved for display.
type PerkView struct {
	Perk
	ProjectTitle string
}

// MediaAssetView is a media asset with its project reference resolved for
// display.
type MediaAssetView struct {
	MediaAsset
	ProjectTitle string
}

// Collections is a value copy of every entity collection, in insertion order.
// Backups capture it and restores replace the live store with it.
type Collections struct {
	Projects    []Project
	Merchandise []MerchandiseItem
	Perks       []Perk
	Media       []MediaAsset
	Users       []User
}
