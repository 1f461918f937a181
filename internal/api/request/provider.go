package request

// UpdateProviderConfigRequest carries runtime provider settings. Nil
// fields are left untouched, so a client can update one setting without
// knowing the others.
type UpdateProviderConfigRequest struct {
	BanxicoToken      *string `json:"banxicoToken"`
	MindicadorBaseURL *string `json:"mindicadorBaseUrl"`
}
