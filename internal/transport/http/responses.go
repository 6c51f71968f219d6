package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"greenlight/internal/audit"
	"greenlight/internal/backup"
	"greenlight/internal/catalog"
	"greenlight/pkg/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler produces the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	writeJSON(w, apperrors.ToHTTPStatus(code), map[string]string{
		"error":             string(code),
		"error_description": err.Error(),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, apperrors.New(apperrors.CodeValidation, "malformed JSON body"))
		return false
	}
	return true
}

type projectResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Kind             string    `json:"kind"`
	Category         string    `json:"category"`
	Status           string    `json:"status"`
	FundedPercentage int       `json:"funded_percentage"`
	TargetAmount     int64     `json:"target_amount"`
	RaisedAmount     int64     `json:"raised_amount"`
	PosterID         string    `json:"poster_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toProjectResponse(p catalog.Project) projectResponse {
	return projectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Kind:             string(p.Kind),
		Category:         p.Category,
		Status:           string(p.Status),
		FundedPercentage: p.FundedPercentage,
		TargetAmount:     p.TargetAmount,
		RaisedAmount:     p.RaisedAmount,
		PosterID:         p.PosterID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

type merchandiseResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Price      int64     `json:"price"`
	StockLevel int       `json:"stock_level"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toMerchandiseResponse(m catalog.MerchandiseItem) merchandiseResponse {
	return merchandiseResponse{
		ID:         m.ID,
		Title:      m.Title,
		Category:   m.Category,
		Price:      m.Price,
		StockLevel: m.StockLevel,
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

type perkResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ProjectID    string    `json:"project_id,omitempty"`
	ProjectTitle string    `json:"project_title,omitempty"`
	Tier         string    `json:"tier"`
	MinAmount    int64     `json:"min_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

func toPerkResponse(v catalog.PerkView) perkResponse {
	return perkResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		ProjectID:    v.ProjectID,
		ProjectTitle: v.ProjectTitle,
		Tier:         string(v.Tier),
		MinAmount:    v.MinAmount,
		CreatedAt:    v.CreatedAt,
	}
}

type dimensionsResponse struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type mediaResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Type         string              `json:"type"`
	URL          string              `json:"url"`
	FileSize     int64               `json:"file_size"`
	Dimensions   *dimensionsResponse `json:"dimensions,omitempty"`
	ProjectID    string              `json:"project_id,omitempty"`
	ProjectTitle string              `json:"project_title,omitempty"`
	Tags         []string            `json:"tags,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

func toMediaResponse(v catalog.MediaAssetView) mediaResponse {
	out := mediaResponse{
		ID:           v.ID,
		Title:        v.Title,
		Type:         string(v.Type),
		URL:          v.URL,
		FileSize:     v.FileSize,
		ProjectID:    v.ProjectID,
		ProjectTitle: v.ProjectTitle,
		Tags:         v.Tags,
		CreatedAt:    v.CreatedAt,
	}
	if v.Dimensions != nil {
		out.Dimensions = &dimensionsResponse{Width: v.Dimensions.Width, Height: v.Dimensions.Height}
	}
	return out
}

type userResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	InvestmentCount int       `json:"investment_count"`
	TotalInvested   int64     `json:"total_invested"`
	CreatedAt       time.Time `json:"created_at"`
}

func toUserResponse(u catalog.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            string(u.Role),
		Status:          string(u.Status),
		InvestmentCount: u.InvestmentCount,
		TotalInvested:   u.TotalInvested,
		CreatedAt:       u.CreatedAt,
	}
}

type auditEntryResponse struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	ActorID      string    `json:"actor_id,omitempty"`
	ActorName    string    `json:"actor_name,omitempty"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Details      string    `json:"details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func toAuditEntryResponse(e audit.Entry) auditEntryResponse {
	return auditEntryResponse{
		ID:           e.ID,
		Action:       e.Action,
		ActorID:      e.ActorID,
		ActorName:    e.ActorName,
		ResourceType: string(e.ResourceType),
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		Timestamp:    e.Timestamp,
	}
}

type snapshotResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toSnapshotResponse(s backup.Snapshot) snapshotResponse {
	return snapshotResponse{
		ID:        s.ID,
		Name:      s.Name,
		Size:      s.Size,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
	}
}
