package carousel

import (
	"log/slog"
	"net/http"

	"github.com/appsqueeze/wpslider/internal/httputil"
	"github.com/appsqueeze/wpslider/internal/player"
	"github.com/appsqueeze/wpslider/internal/playlist"
)

// Assets are the third-party browser scripts the page loads.
type Assets struct {
	HLSScript    string
	SwiperScript string
	SwiperStyle  string
}

var DefaultAssets = Assets{
	HLSScript:    "https://cdn.jsdelivr.net/npm/hls.js@1/dist/hls.min.js",
	SwiperScript: "https://cdn.jsdelivr.net/npm/swiper@11/swiper-bundle.min.js",
	SwiperStyle:  "https://cdn.jsdelivr.net/npm/swiper@11/swiper-bundle.min.css",
}

type Handler struct {
	cfg    Config
	assets Assets
}

func NewHandler(cfg Config, assets Assets) *Handler {
	if assets.HLSScript == "" {
		assets.HLSScript = DefaultAssets.HLSScript
	}
	if assets.SwiperScript == "" {
		assets.SwiperScript = DefaultAssets.SwiperScript
	}
	if assets.SwiperStyle == "" {
		assets.SwiperStyle = DefaultAssets.SwiperStyle
	}
	return &Handler{cfg: cfg, assets: assets}
}

// Assets reports the script and style URLs the page loads, defaults applied.
func (h *Handler) Assets() Assets {
	return h.assets
}

func (h *Handler) mount(r *http.Request) (*Controller, error) {
	ctrl := NewController(h.cfg)
	if err := ctrl.Mount(r.Context(), player.RuntimeFromUserAgent(r.UserAgent())); err != nil {
		return nil, err
	}
	return ctrl, nil
}

type pageData struct {
	Nonce  httputil.Nonce
	Assets Assets
	Slides []Slide
	Error  string
	Empty  bool
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctrl, err := h.mount(r)
	if err != nil {
		slog.Error("carousel: mount failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	state := ctrl.State()
	data := pageData{
		Nonce:  httputil.NonceFrom(r.Context()),
		Assets: h.assets,
	}
	status := http.StatusOK
	switch state.Status {
	case playlist.StatusError:
		data.Error = state.Message()
		status = http.StatusBadGateway
	case playlist.StatusReady:
		data.Slides = ctrl.Slides()
		data.Empty = len(data.Slides) == 0
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.Error("carousel: failed to render page", "error", err)
	}
}

type wallpaperItem struct {
	ID            int                `json:"id"`
	WallpaperName string             `json:"wallpaperName"`
	MediaURL      string             `json:"mediaUrl"`
	Kind          playlist.MediaKind `json:"kind"`
	Playback      player.Path        `json:"playback"`
	Levels        []player.Level     `json:"levels,omitempty"`
	Notice        string             `json:"notice,omitempty"`
}

type wallpapersResponse struct {
	Status string          `json:"status"`
	Items  []wallpaperItem `json:"items"`
}

// List serves the mounted slides as JSON for clients that render their own
// carousel.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctrl, err := h.mount(r)
	if err != nil {
		slog.Error("carousel: mount failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	state := ctrl.State()
	if state.Status == playlist.StatusError {
		httputil.WriteError(w, http.StatusBadGateway, state.Message())
		return
	}

	slides := ctrl.Slides()
	items := make([]wallpaperItem, 0, len(slides))
	for _, s := range slides {
		item := wallpaperItem{
			ID:            s.Item.ID,
			WallpaperName: s.Item.DisplayName(),
			MediaURL:      s.DisplayURL,
			Kind:          s.Item.Kind,
			Playback:      s.Path,
		}
		if s.Segmented() {
			item.Levels = s.QualityLevels()
		}
		if err := s.Path.Err(); err != nil {
			item.Notice = err.Error()
		}
		items = append(items, item)
	}
	httputil.WriteJSON(w, http.StatusOK, wallpapersResponse{Status: state.Status.String(), Items: items})
}

