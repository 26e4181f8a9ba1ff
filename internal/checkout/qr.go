package checkout

import qrcode "github.com/skip2/go-qrcode"

// PaymentQR renders the static payment payload as a PNG. The same image
// serves both flows; nothing order-specific is encoded.
func PaymentQR(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
