package request

type CreateOrganizationRequest struct {
	Name         string `json:"name"`
	CountryCode  string `json:"countryCode"`
	BaseCurrency string `json:"baseCurrency"`
	Provider     string `json:"provider"`
	IntervalUnit string `json:"intervalUnit"`
}

type UpdateOrganizationSettingsRequest struct {
	BaseCurrency string `json:"baseCurrency"`
	Provider     string `json:"provider"`
	IntervalUnit string `json:"intervalUnit"`
}
