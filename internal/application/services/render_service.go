package services

import (
	"kilometers.ai/assets/internal/core/asset"
	"kilometers.ai/assets/internal/core/ports"
)

// Template variable names the slots are published under
const (
	VarStyleBlock    = "css_head"
	VarHeadScripts   = "js_head"
	VarFooterScripts = "js_footer"
)

// Slots are the three markup outputs handed to the page template
type Slots struct {
	StyleBlock    string `json:"css_head"`
	HeadScripts   string `json:"js_head"`
	FooterScripts string `json:"js_footer"`
}

// TemplateVars returns the slots keyed by their template variable names
func (s Slots) TemplateVars() map[string]string {
	return map[string]string{
		VarStyleBlock:    s.StyleBlock,
		VarHeadScripts:   s.HeadScripts,
		VarFooterScripts: s.FooterScripts,
	}
}

// IsEmpty reports whether no slot has content
func (s Slots) IsEmpty() bool {
	return s.StyleBlock == "" && s.HeadScripts == "" && s.FooterScripts == ""
}

// RenderService runs the render phase over a populated store
type RenderService struct {
	logger ports.Logger
}

// NewRenderService creates a new render service
func NewRenderService(logger ports.Logger) *RenderService {
	return &RenderService{logger: logger}
}

// Render produces the three slots. Rendering an empty or partially filled
// store is not an error; missing buckets render as empty strings.
func (s *RenderService) Render(store *asset.Store) Slots {
	slots := Slots{
		StyleBlock: s.bucket(store, asset.TypeCSS, asset.GroupHead),
		HeadScripts: s.bucket(store, asset.TypeJS, asset.GroupHead) +
			s.bucket(store, asset.TypeInline, asset.GroupHead),
		FooterScripts: s.bucket(store, asset.TypeJS, asset.GroupFooter) +
			s.bucket(store, asset.TypeInline, asset.GroupFooter),
	}

	s.logger.Debug("rendered asset slots",
		"assets", store.Len(),
		VarStyleBlock, len(slots.StyleBlock),
		VarHeadScripts, len(slots.HeadScripts),
		VarFooterScripts, len(slots.FooterScripts))
	return slots
}

func (s *RenderService) bucket(store *asset.Store, t asset.Type, g asset.Group) string {
	return asset.Render(t, store.Sorted(t, g))
}
