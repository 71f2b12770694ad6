// Package vnpay signs payment redirects for the VNPay gateway and verifies
// its return and IPN callbacks.
package vnpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	apiVersion    = "2.1.0"
	command       = "pay"
	currency      = "VND"
	orderType     = "other"
	dateLayout    = "20060102150405"
	hashParam     = "vnp_SecureHash"
	hashTypeParam = "vnp_SecureHashType"
	// amounts travel in hundredths of a dong
	amountScale = 100
)

// gatewayZone is the provider's clock (UTC+7). A fixed zone avoids a tzdata dependency.
var gatewayZone = time.FixedZone("ICT", 7*60*60)

type Config struct {
	PaymentURL   string
	TerminalCode string
	HashSecret   string
	ReturnURL    string
	Locale       string
	// ExpireAfter bounds how long the redirect stays payable.
	ExpireAfter time.Duration
}

type Gateway struct {
	cfg Config
	now func() time.Time
}

func NewGateway(cfg Config) (*Gateway, error) {
	var problems []error
	if cfg.PaymentURL == "" {
		problems = append(problems, errs.NewValueIsRequiredError("paymentURL"))
	}
	if cfg.TerminalCode == "" {
		problems = append(problems, errs.NewValueIsRequiredError("terminalCode"))
	}
	if cfg.HashSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("hashSecret"))
	}
	if cfg.ReturnURL == "" {
		problems = append(problems, errs.NewValueIsRequiredError("returnURL"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	if cfg.Locale == "" {
		cfg.Locale = "vn"
	}
	if cfg.ExpireAfter <= 0 {
		cfg.ExpireAfter = 15 * time.Minute
	}
	return &Gateway{cfg: cfg, now: time.Now}, nil
}

func (g *Gateway) CreatePaymentData(_ context.Context, req ports.PaymentRequest) (ports.PaymentData, error) {
	if err := req.Amount.Validate(); err != nil {
		return ports.PaymentData{}, err
	}
	now := g.now().In(gatewayZone)

	params := map[string]string{
		"vnp_Version":    apiVersion,
		"vnp_Command":    command,
		"vnp_TmnCode":    g.cfg.TerminalCode,
		"vnp_Amount":     strconv.FormatInt(int64(req.Amount)*amountScale, 10),
		"vnp_CurrCode":   currency,
		"vnp_TxnRef":     req.TrackingNumber,
		"vnp_OrderInfo":  req.Description,
		"vnp_OrderType":  orderType,
		"vnp_Locale":     g.cfg.Locale,
		"vnp_ReturnUrl":  g.cfg.ReturnURL,
		"vnp_IpAddr":     req.ClientIP,
		"vnp_CreateDate": now.Format(dateLayout),
		"vnp_ExpireDate": now.Add(g.cfg.ExpireAfter).Format(dateLayout),
	}

	query := canonicalQuery(params)
	signature := sign(g.cfg.HashSecret, query)
	params[hashParam] = signature

	return ports.PaymentData{
		PaymentURL:   g.cfg.PaymentURL + "?" + query + "&" + hashParam + "=" + signature,
		SignedParams: params,
	}, nil
}

// VerifyCallback checks the signature over every vnp_ parameter except the
// hash fields, then decodes the result.
func (g *Gateway) VerifyCallback(params url.Values) (ports.PaymentCallback, error) {
	received := params.Get(hashParam)
	if received == "" {
		return ports.PaymentCallback{}, fmt.Errorf("%w: missing %s", order.ErrPaymentVerificationFailed, hashParam)
	}

	signed := make(map[string]string, len(params))
	for k := range params {
		if k == hashParam || k == hashTypeParam || !strings.HasPrefix(k, "vnp_") {
			continue
		}
		if v := params.Get(k); v != "" {
			signed[k] = v
		}
	}
	expected := sign(g.cfg.HashSecret, canonicalQuery(signed))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(received))) {
		return ports.PaymentCallback{}, fmt.Errorf("%w: signature mismatch", order.ErrPaymentVerificationFailed)
	}

	raw, err := strconv.ParseInt(params.Get("vnp_Amount"), 10, 64)
	if err != nil || raw < 0 || raw%amountScale != 0 {
		return ports.PaymentCallback{}, fmt.Errorf("%w: bad amount %q", order.ErrPaymentVerificationFailed, params.Get("vnp_Amount"))
	}
	tn := params.Get("vnp_TxnRef")
	if tn == "" {
		return ports.PaymentCallback{}, fmt.Errorf("%w: missing vnp_TxnRef", order.ErrPaymentVerificationFailed)
	}

	return ports.PaymentCallback{
		TrackingNumber: tn,
		TransactionRef: params.Get("vnp_TransactionNo"),
		ResponseCode:   params.Get("vnp_ResponseCode"),
		Amount:         kernel.Money(raw / amountScale),
	}, nil
}

// canonicalQuery joins the URL-encoded pairs in key order. Empty values are
// left out, as the provider does when it signs.
func canonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

func sign(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
