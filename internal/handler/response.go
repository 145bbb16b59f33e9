package handler

import (
	"net/http"
	"time"

	"github.com/placementdrive/listing-server-go/internal/httputil"
	"github.com/placementdrive/listing-server-go/internal/model"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func formatPosting(p *model.Posting) map[string]any {
	return map[string]any{
		"id":           p.ID,
		"company":      p.Company,
		"designation":  p.Designation,
		"description":  p.Description,
		"image":        p.ImagePath,
		"application":  p.ApplicationLink,
		"salary":       p.Salary,
		"batch":        p.Batch,
		"postedDate":   p.PostedDate.Format(dateLayout),
		"inactiveDate": formatDate(p.InactiveDate),
	}
}
