// internal/app/features/activities/types.go
package activities

// activityRequest is the payload for activity create and update. Both
// fields are required on create; update accepts either.
type activityRequest struct {
	NomeAtividade  *string  `json:"nome_atividade"`
	ValorAtividade *float64 `json:"valor_atividade"`
}

// mutationResponse reports a successful mutation together with the
// reconciled remaining balance.
type mutationResponse struct {
	Mensagem     string  `json:"mensagem"`
	NovoRestante float64 `json:"novo_restante"`
}
