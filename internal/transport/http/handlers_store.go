package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"greenlight/internal/catalog"
)

// Merchandise -----------------------------------------------------------------

type createMerchandiseRequest struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	Price      int64  `json:"price"`
	StockLevel int    `json:"stock_level"`
}

type updateMerchandiseRequest struct {
	Title      *string `json:"title"`
	Category   *string `json:"category"`
	Price      *int64  `json:"price"`
	StockLevel *int    `json:"stock_level"`
}

func (h *Handler) handleCreateMerchandise(w http.ResponseWriter, r *http.Request) {
	var req createMerchandiseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.catalog.CreateMerchandise(r.Context(), catalog.MerchandiseInput{
		Title:      req.Title,
		Category:   req.Category,
		Price:      req.Price,
		StockLevel: req.StockLevel,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMerchandiseResponse(item))
}

func (h *Handler) handleUpdateMerchandise(w http.ResponseWriter, r *http.Request) {
	var req updateMerchandiseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.catalog.UpdateMerchandise(r.Context(), chi.URLParam(r, "id"), catalog.MerchandisePatch{
		Title:      req.Title,
		Category:   req.Category,
		Price:      req.Price,
		StockLevel: req.StockLevel,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMerchandiseResponse(item))
}

func (h *Handler) handleDeleteMerchandise(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteMerchandise(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetMerchandise(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetMerchandise(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMerchandiseResponse(item))
}

func (h *Handler) handleListMerchandise(w http.ResponseWriter, r *http.Request) {
	items := h.catalog.ListMerchandise(r.Context(), r.URL.Query().Get("category"))
	out := make([]merchandiseResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMerchandiseResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

// Perks -----------------------------------------------------------------------

type createPerkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   string `json:"project_id"`
	Tier        string `json:"tier"`
	MinAmount   int64  `json:"min_amount"`
}

type updatePerkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ProjectID   *string `json:"project_id"`
	Tier        *string `json:"tier"`
	MinAmount   *int64  `json:"min_amount"`
}

func (h *Handler) handleCreatePerk(w http.ResponseWriter, r *http.Request) {
	var req createPerkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	perk, err := h.catalog.CreatePerk(r.Context(), catalog.PerkInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Tier:        catalog.PerkTier(req.Tier),
		MinAmount:   req.MinAmount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPerkResponse(catalog.PerkView{Perk: perk}))
}

func (h *Handler) handleUpdatePerk(w http.ResponseWriter, r *http.Request) {
	var req updatePerkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch := catalog.PerkPatch{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		MinAmount:   req.MinAmount,
	}
	if req.Tier != nil {
		tier := catalog.PerkTier(*req.Tier)
		patch.Tier = &tier
	}
	perk, err := h.catalog.UpdatePerk(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPerkResponse(catalog.PerkView{Perk: perk}))
}

func (h *Handler) handleDeletePerk(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeletePerk(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPerk(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.GetPerk(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPerkResponse(view))
}

func (h *Handler) handleListPerks(w http.ResponseWriter, r *http.Request) {
	views := h.catalog.ListPerks(r.Context(), catalog.PerkTier(r.URL.Query().Get("tier")))
	out := make([]perkResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toPerkResponse(view))
	}
	writeJSON(w, http.StatusOK, out)
}

// Media assets ----------------------------------------------------------------

type dimensionsRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type createMediaRequest struct {
	Title      string             `json:"title"`
	Type       string             `json:"type"`
	URL        string             `json:"url"`
	FileSize   int64              `json:"file_size"`
	Dimensions *dimensionsRequest `json:"dimensions"`
	ProjectID  string             `json:"project_id"`
	Tags       []string           `json:"tags"`
}

type updateMediaRequest struct {
	Title      *string            `json:"title"`
	Type       *string            `json:"type"`
	URL        *string            `json:"url"`
	FileSize   *int64             `json:"file_size"`
	Dimensions *dimensionsRequest `json:"dimensions"`
	ProjectID  *string            `json:"project_id"`
	Tags       *[]string          `json:"tags"`
}

func (h *Handler) handleCreateMedia(w http.ResponseWriter, r *http.Request) {
	var req createMediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input := catalog.MediaInput{
		Title:     req.Title,
		Type:      catalog.MediaType(req.Type),
		URL:       req.URL,
		FileSize:  req.FileSize,
		ProjectID: req.ProjectID,
		Tags:      req.Tags,
	}
	if req.Dimensions != nil {
		input.Dimensions = &catalog.Dimensions{Width: req.Dimensions.Width, Height: req.Dimensions.Height}
	}
	asset, err := h.catalog.CreateMedia(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMediaResponse(catalog.MediaAssetView{MediaAsset: asset}))
}

func (h *Handler) handleUpdateMedia(w http.ResponseWriter, r *http.Request) {
	var req updateMediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	patch := catalog.MediaPatch{
		Title:     req.Title,
		URL:       req.URL,
		FileSize:  req.FileSize,
		ProjectID: req.ProjectID,
		Tags:      req.Tags,
	}
	if req.Type != nil {
		mediaType := catalog.MediaType(*req.Type)
		patch.Type = &mediaType
	}
	if req.Dimensions != nil {
		patch.Dimensions = &catalog.Dimensions{Width: req.Dimensions.Width, Height: req.Dimensions.Height}
	}
	asset, err := h.catalog.UpdateMedia(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMediaResponse(catalog.MediaAssetView{MediaAsset: asset}))
}

func (h *Handler) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteMedia(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetMedia(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.GetMedia(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMediaResponse(view))
}

func (h *Handler) handleListMedia(w http.ResponseWriter, r *http.Request) {
	views := h.catalog.ListMedia(r.Context(), catalog.MediaFilter{
		Type: catalog.MediaType(r.URL.Query().Get("type")),
		Tag:  r.URL.Query().Get("tag"),
	})
	out := make([]mediaResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toMediaResponse(view))
	}
	writeJSON(w, http.StatusOK, out)
}
