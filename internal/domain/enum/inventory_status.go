package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InventoryStatus represents the availability of an inventory item
type InventoryStatus int

const (
	InventoryStatusAvailable    InventoryStatus = 0
	InventoryStatusOutOfStock   InventoryStatus = 1
	InventoryStatusDiscontinued InventoryStatus = 2
)

var inventoryStatusNames = [...]string{"available", "out_of_stock", "discontinued"}

func (s InventoryStatus) String() string {
	if int(s) < 0 || int(s) >= len(inventoryStatusNames) {
		return fmt.Sprintf("unknown(%d)", int(s))
	}
	return inventoryStatusNames[s]
}

// IsValid reports whether s is one of the declared statuses
func (s InventoryStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(inventoryStatusNames)
}

// ParseInventoryStatus converts a status name into its InventoryStatus value
func ParseInventoryStatus(name string) (InventoryStatus, error) {
	for i, n := range inventoryStatusNames {
		if n == name {
			return InventoryStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown inventory status %q", name)
}

func (s InventoryStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InventoryStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InventoryStatus(i)
		return nil
	}
	parsed, err := ParseInventoryStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s InventoryStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InventoryStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InventoryStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InventoryStatus(v)
	case int:
		*s = InventoryStatus(v)
	}
	return nil
}
