package evidencepdf

import (
	"time"

	"codeberg.org/go-pdf/fpdf"
)

// producer is written into every generated document.
const producer = "evidencepdf"

// newDocument returns an empty fpdf document measured in points, with no
// margins, no automatic page breaks and a fixed creation date so reruns
// produce the same bytes.
func newDocument(f PageFormat, created time.Time) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: f.Width, Ht: f.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetCatalogSort(true)
	pdf.SetProducer(producer, true)
	pdf.SetCreator(producer, true)
	return pdf
}
