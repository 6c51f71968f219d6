package catalog

import (
	"github.com/asaskevich/govalidator"

	"greenlight/pkg/apperrors"
)

var validProjectKinds = map[ProjectKind]bool{
	ProjectKindFilm:      true,
	ProjectKindMusic:     true,
	ProjectKindWebseries: true,
}

var validProjectStatuses = map[ProjectStatus]bool{
	ProjectStatusActive:    true,
	ProjectStatusPending:   true,
	ProjectStatusCompleted: true,
	ProjectStatusArchived:  true,
}

var validPerkTiers = map[PerkTier]bool{
	PerkTierSupporter: true,
	PerkTierBacker:    true,
	PerkTierProducer:  true,
	PerkTierExecutive: true,
}

var validMediaTypes = map[MediaType]bool{
	MediaTypeImage:    true,
	MediaTypeVideo:    true,
	MediaTypeAudio:    true,
	MediaTypeDocument: true,
}

var validUserRoles = map[UserRole]bool{
	UserRoleUser:  true,
	UserRoleAdmin: true,
}

var validUserStatuses = map[UserStatus]bool{
	UserStatusActive:   true,
	UserStatusInactive: true,
	UserStatusBanned:   true,
}

func invalid(message string) error {
	return apperrors.New(apperrors.CodeValidation, message)
}

func validateProject(p Project) error {
	if p.Title == "" {
		return invalid("project title must not be empty")
	}
	if !validProjectKinds[p.Kind] {
		return invalid("unknown project kind: " + string(p.Kind))
	}
	if !validProjectStatuses[p.Status] {
		return invalid("unknown project status: " + string(p.Status))
	}
	if p.TargetAmount < 0 {
		return invalid("target amount must not be negative")
	}
	if p.RaisedAmount < 0 {
		return invalid("raised amount must not be negative")
	}
	return nil
}

func validateMerchandise(m MerchandiseItem) error {
	if m.Title == "" {
		return invalid("merchandise title must not be empty")
	}
	if m.Price < 0 {
		return invalid("price must not be negative")
	}
	if m.StockLevel < 0 {
		return invalid("stock level must not be negative")
	}
	return nil
}

func validatePerk(p Perk) error {
	if p.Title == "" {
		return invalid("perk title must not be empty")
	}
	if !validPerkTiers[p.Tier] {
		return invalid("unknown perk tier: " + string(p.Tier))
	}
	if p.MinAmount <= 0 {
		return invalid("minimum amount must be positive")
	}
	return nil
}

func validateMedia(m MediaAsset) error {
	if m.Title == "" {
		return invalid("media title must not be empty")
	}
	if !validMediaTypes[m.Type] {
		return invalid("unknown media type: " + string(m.Type))
	}
	if !govalidator.IsURL(m.URL) {
		return invalid("media url is not a valid URL")
	}
	if m.FileSize < 0 {
		return invalid("file size must not be negative")
	}
	return nil
}

func validateUser(u User) error {
	if u.Name == "" {
		return invalid("user name must not be empty")
	}
	if !govalidator.IsEmail(u.Email) {
		return invalid("user email is not a valid address")
	}
	if !validUserRoles[u.Role] {
		return invalid("unknown user role: " + string(u.Role))
	}
	if !validUserStatuses[u.Status] {
		return invalid("unknown user status: " + string(u.Status))
	}
	return nil
}
