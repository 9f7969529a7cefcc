package excel

// ExcelConfig holds configuration for a scenario workbook source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	Sheet    string `json:"sheet"` // xlsx only
	Enabled  bool   `json:"enabled"`
}

// DefaultExcelConfig returns sensible defaults for workbook processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		Sheet:   "Sheet1",
		Enabled: false,
	}
}
