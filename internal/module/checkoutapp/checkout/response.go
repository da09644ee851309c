package checkout

type CreateTransactionResponse struct {
	RedirectURL string `json:"redirect_url"`
}
