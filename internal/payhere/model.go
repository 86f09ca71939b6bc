package payhere

// CheckoutRequest is the payload the client forwards to the hosted gateway.
// Field names are the gateway's fixed contract and must match exactly.
type CheckoutRequest struct {
	MerchantID      string `json:"merchant_id"`
	ReturnURL       string `json:"return_url"`
	CancelURL       string `json:"cancel_url"`
	NotifyURL       string `json:"notify_url"`
	OrderID         string `json:"order_id"`
	Items           string `json:"items"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	DeliveryAddress string `json:"delivery_address"`
	DeliveryCity    string `json:"delivery_city"`
	DeliveryCountry string `json:"delivery_country"`
	Custom1         string `json:"custom_1"`
	Custom2         string `json:"custom_2"`
	Hash            string `json:"hash"`
}

// Notification is the asynchronous server-to-server callback the gateway
// POSTs form-encoded to the notify URL. The json tags are used when the
// payload is persisted for audit.
type Notification struct {
	MerchantID      string `form:"merchant_id" json:"merchant_id"`
	OrderID         string `form:"order_id" json:"order_id"`
	PayhereAmount   string `form:"payhere_amount" json:"payhere_amount"`
	PayhereCurrency string `form:"payhere_currency" json:"payhere_currency"`
	StatusCode      int    `form:"status_code" json:"status_code"`
	MD5Sig          string `form:"md5sig" json:"md5sig"`
	Custom1         string `form:"custom_1" json:"custom_1,omitempty"`
	Custom2         string `form:"custom_2" json:"custom_2,omitempty"`
	Method          string `form:"method" json:"method,omitempty"`
	StatusMessage   string `form:"status_message" json:"status_message,omitempty"`
	PaymentID       string `form:"payment_id" json:"payment_id"`
	CardHolderName  string `form:"card_holder_name" json:"card_holder_name,omitempty"`
	CardNo          string `form:"card_no" json:"card_no,omitempty"`
}
