package projector

import (
	"fmt"
	"net/url"

	"github.com/Althaf00710/resq-livemap/internal/model"
)

const markerSize = 40

// greyHex is the tailwind gray-400 tint applied to stale markers,
// percent-encoded for use inside a query string.
const greyHex = "%239ca3af"

// IconifyURL builds the remote SVG URL for an Iconify icon name. Grey
// tinting is the sole visual signal that a vehicle's data has gone stale.
func IconifyURL(name string, size int, grey bool) string {
	u := fmt.Sprintf("https://api.iconify.design/%s.svg?width=%d&height=%d",
		url.PathEscape(name), size, size)
	if grey {
		u += "&color=" + greyHex
	}
	return u
}

// FallbackPin returns a data-URL SVG pin used when a vehicle's category
// resolves no icon.
func FallbackPin(grey bool) string {
	color := "#ef4444"
	if grey {
		color = "#9ca3af"
	}
	svg := fmt.Sprintf(`<svg xmlns='http://www.w3.org/2000/svg' width='64' height='64' viewBox='0 0 64 64'>`+
		`<path d='M32 60c10-12 20-20 20-32A20 20 0 0 0 12 28c0 12 10 20 20 32z' fill='%s'/>`+
		`<circle cx='32' cy='28' r='14' fill='white'/>`+
		`<text x='32' y='34' font-size='20' text-anchor='middle' fill='%s'>+</text>`+
		`</svg>`, color, color)
	return "data:image/svg+xml;charset=UTF-8," + url.PathEscape(svg)
}

// IconFor resolves the marker icon for a vehicle: the first
// emergency-category icon from its metadata, or the generic fallback pin.
func IconFor(meta model.VehicleMeta, stale bool) Icon {
	if name, ok := meta.FirstIcon(); ok {
		return Icon{
			URL:     IconifyURL(name, markerSize, stale),
			Width:   markerSize,
			Height:  markerSize,
			AnchorX: markerSize / 2,
			AnchorY: markerSize / 2,
		}
	}
	return Icon{
		URL:     FallbackPin(stale),
		Width:   markerSize,
		Height:  markerSize,
		AnchorX: markerSize / 2,
		AnchorY: 36,
	}
}
