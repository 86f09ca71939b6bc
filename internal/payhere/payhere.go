// Package payhere implements the hosted-checkout wire contract of the PayHere
// payment gateway: amount formatting, the keyed MD5 checkout signature and
// verification of asynchronous md5sig notifications.
package payhere

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrSignatureMismatch = errors.New("notification signature mismatch")
	ErrMerchantMismatch  = errors.New("notification merchant id mismatch")
)

// FormatAmount renders an amount the way the gateway expects it: exactly two
// decimal places, no thousands separators, independent of locale.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Signer computes checkout signatures for one merchant account.
type Signer struct {
	merchantID     string
	merchantSecret string
}

func NewSigner(merchantID, merchantSecret string) *Signer {
	return &Signer{
		merchantID:     merchantID,
		merchantSecret: merchantSecret,
	}
}

func (s *Signer) MerchantID() string {
	return s.merchantID
}

// upperMD5 is the gateway's digest primitive: hex MD5, uppercased.
func upperMD5(input string) string {
	sum := md5.Sum([]byte(input))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Sign produces the outbound checkout hash:
//
//	UPPER(MD5(merchant_id + order_id + amount + currency + UPPER(MD5(secret))))
func (s *Signer) Sign(orderID string, amount decimal.Decimal, currency string) string {
	payload := s.merchantID + orderID + FormatAmount(amount) + currency + upperMD5(s.merchantSecret)
	return upperMD5(payload)
}

// VerifyNotification recomputes the md5sig a notification should carry and
// compares it in constant time against the one supplied by the gateway. The
// gateway-formatted amount and currency are used verbatim; reformatting them
// locally would break the digest.
func (s *Signer) VerifyNotification(n *Notification) error {
	if n.MerchantID != s.merchantID {
		return ErrMerchantMismatch
	}

	payload := s.merchantID +
		n.OrderID +
		n.PayhereAmount +
		n.PayhereCurrency +
		fmt.Sprintf("%d", n.StatusCode) +
		upperMD5(s.merchantSecret)
	expected := upperMD5(payload)

	supplied := strings.ToUpper(n.MD5Sig)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) != 1 {
		return ErrSignatureMismatch
	}
	return nil
}
