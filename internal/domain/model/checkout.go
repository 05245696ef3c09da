package model

// 決済プロバイダへ渡す1行（productId, priceId, quantity）
type CheckoutLine struct {
	ProductID string `json:"productId"`
	PriceID   string `json:"priceId"`
	Quantity  int    `json:"quantity"`
}

// ホスト型決済への依頼内容
type CheckoutRequest struct {
	Items      []CheckoutLine `json:"items"`
	SuccessURL string         `json:"successUrl"`
	CancelURL  string         `json:"cancelUrl"`
}

// 決済プロバイダの返却（リダイレクト先）
type CheckoutResult struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"url"`
}

// カタログIDから決済側のprice IDを作る
func PriceIDFor(productID string) string {
	return "price_" + productID
}
