package domain

// CompanyProfile contém os metadados estáticos da empresa (company_profile.json).
// Lido na carga e nunca transformado.
type CompanyProfile struct {
	Name     string   `json:"name"`
	Industry string   `json:"industry"`
	Regions  []string `json:"regions"`
}
