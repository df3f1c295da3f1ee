package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a payment was made
type PaymentMethod int

const (
	PaymentMethodCash          PaymentMethod = 0
	PaymentMethodCard          PaymentMethod = 1
	PaymentMethodBankTransfer  PaymentMethod = 2
	PaymentMethodMobilePayment PaymentMethod = 3
	PaymentMethodCheque        PaymentMethod = 4
)

var paymentMethodNames = [...]string{"cash", "card", "bank_transfer", "mobile_payment", "cheque"}

func (m PaymentMethod) String() string {
	if int(m) < 0 || int(m) >= len(paymentMethodNames) {
		return fmt.Sprintf("unknown(%d)", int(m))
	}
	return paymentMethodNames[m]
}

// IsValid reports whether m is one of the declared methods
func (m PaymentMethod) IsValid() bool {
	return int(m) >= 0 && int(m) < len(paymentMethodNames)
}

// ParsePaymentMethod converts a method name into its PaymentMethod value
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for i, n := range paymentMethodNames {
		if n == name {
			return PaymentMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", name)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
