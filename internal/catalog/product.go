package catalog

import (
	"encoding/json"
	"fmt"
	"time"
)

// Product types.
const (
	TypeWatch     = "watch"
	TypeWallClock = "wall_clock"
)

// Gender values. Gender is only meaningful for watches; wall clocks pass
// every gender filter.
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderKids   = "kids"
	GenderUnisex = "unisex"
)

// Product is the read model the catalog engine filters and sorts over.
// Price is nil for "contact for price" items.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	ModelNumber string    `json:"modelNumber,omitempty"`
	ProductType string    `json:"productType"`
	Gender      string    `json:"gender,omitempty"`
	WatchShape  string    `json:"watchShape,omitempty"`
	Colors      []Color   `json:"colors"`
	Price       *float64  `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Color carries a color name and, for the detailed variant, a per-color
// quantity. On the wire a color is either a bare string ("black") or an
// object ({"name":"gold","quantity":3}); both forms decode into Color and
// re-encode in the form they arrived in.
type Color struct {
	Name     string
	Quantity int
	detailed bool
}

// PlainColor returns the legacy bare-name variant.
func PlainColor(name string) Color {
	return Color{Name: name}
}

// DetailedColor returns the object variant with a quantity.
func DetailedColor(name string, quantity int) Color {
	return Color{Name: name, Quantity: quantity, detailed: true}
}

// Detailed reports whether the color carries a quantity.
func (c Color) Detailed() bool { return c.detailed }

func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Color{Name: name}
		return nil
	}

	var obj struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("color must be a string or an object: %w", err)
	}
	*c = Color{Name: obj.Name, Quantity: obj.Quantity, detailed: true}
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	if !c.detailed {
		return json.Marshal(c.Name)
	}
	return json.Marshal(struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}{c.Name, c.Quantity})
}

// ColorNames normalizes both color variants to bare names, preserving order.
func ColorNames(colors []Color) []string {
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, c.Name)
	}
	return names
}
