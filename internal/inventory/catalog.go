package inventory

// Department is an organisational unit owning boxes. Color is a 0xRRGGBB value.
type Department struct {
	Name  string
	Color uint32
}

// Departments in rotation order for generated data.
var Departments = []Department{
	{Name: "Finanzen", Color: 0x00A99D},
	{Name: "Personal", Color: 0xE8913A},
	{Name: "Bauamt", Color: 0x5B6ABF},
	{Name: "Gemeinderat", Color: 0xC94040},
	{Name: "Einwohnerdienste", Color: 0x4A9B4A},
}

// Box statuses.
const (
	StatusStored    = "eingelagert"
	StatusRequested = "angefordert"
	StatusDisposal  = "zur_entsorgung"
)

// defaultDepartmentColor is used for departments not in the catalog.
const defaultDepartmentColor = 0x6B7280

// DepartmentColor returns the color for a department name.
func DepartmentColor(name string) uint32 {
	for _, d := range Departments {
		if d.Name == name {
			return d.Color
		}
	}
	return defaultDepartmentColor
}

var labels = []string{
	"Jahresabschlüsse 2018–2022",
	"Steuerakten Unternehmen A-K",
	"Lohnabrechnungen 2020",
	"Baugesuche Quartier Nord",
	"Protokolle Gemeinderat 2019",
	"Einbürgerungsdossiers 2021",
	"Personalakten A–F",
	"Rechnungen Lieferanten Q1-Q4",
	"Bauabnahmen Gewerbegebiet",
	"Sitzungsprotokolle 2020–2022",
}
