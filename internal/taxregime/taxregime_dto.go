package taxregime

type CompareRequest struct {
	AnnualGross float64 `json:"annual_gross" binding:"gte=0"`
	Exemptions
}
