package controllers

import (
	"net/http"
	"strconv"

	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/config"
	"github.com/putrawardana/warungsaji/pkg/qr"
	"github.com/putrawardana/warungsaji/pkg/response"
)

// QRController renders printable QR codes for the storefront.
type QRController struct{}

func NewQRController() *QRController {
	return &QRController{}
}

// Generate handles GET /api/admin/qr?url=&table=&size=. With table set,
// the code carries an encrypted table token appended to the store URL;
// with url set, the code points at that URL verbatim; otherwise it
// points at the plain store URL.
func (c *QRController) Generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size, _ := strconv.Atoi(q.Get("size"))

	target := q.Get("url")
	if table := q.Get("table"); table != "" {
		link, err := services.TableLink(config.StoreURL(), table)
		if err != nil {
			response.BadRequest(w, err.Error())
			return
		}
		target = link
	}
	if target == "" {
		target = config.StoreURL()
	}

	png, err := qr.PNG(target, size)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="warungsaji-qr.png"`)
	w.Write(png) //nolint:errcheck
}
