package domain

import "fmt"

// FieldType enumerates the input types the storefront form renderer supports.
var allowedFieldTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"tel":      true,
	"number":   true,
	"select":   true,
	"textarea": true,
	"hidden":   true,
}

// FormField is one input in the checkout form, in render order.
type FormField struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

// FormStyle is the merchant-configured look of the rendered form.
type FormStyle struct {
	ButtonText      string `json:"buttonText,omitempty"`
	ButtonColor     string `json:"buttonColor,omitempty"`
	ButtonTextColor string `json:"buttonTextColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BorderRadius    int    `json:"borderRadius,omitempty"`
}

// FormConfig is the per-shop form schema: ordered field list plus style.
type FormConfig struct {
	Active bool        `json:"active"`
	Fields []FormField `json:"fields"`
	Style  FormStyle   `json:"style"`
}

// DefaultFormConfig is served until the merchant saves their own.
func DefaultFormConfig() *FormConfig {
	return &FormConfig{
		Active: true,
		Fields: []FormField{
			{Name: "full_name", Type: "text", Label: "Full name", Required: true},
			{Name: "phone", Type: "tel", Label: "Phone", Required: true},
			{Name: "wilaya", Type: "select", Label: "Wilaya", Required: true},
			{Name: "commune", Type: "select", Label: "Commune", Required: true},
			{Name: "address", Type: "text", Label: "Address", Required: false},
			{Name: "quantity", Type: "number", Label: "Quantity", Required: true},
		},
		Style: FormStyle{
			ButtonText:   "Order now",
			ButtonColor:  "#1a73e8",
			BorderRadius: 8,
		},
	}
}

// Validate checks a form config coming in from the admin API.
func (c *FormConfig) Validate() error {
	if len(c.Fields) == 0 {
		return fmt.Errorf("form must have at least one field")
	}
	seen := make(map[string]bool, len(c.Fields))
	for i, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
		if !allowedFieldTypes[f.Type] {
			return fmt.Errorf("field %q: unsupported type %q", f.Name, f.Type)
		}
		if f.Type == "select" && len(f.Options) == 0 {
			// wilaya/commune selects are populated from the location cascade
			if f.Name != "wilaya" && f.Name != "commune" {
				return fmt.Errorf("field %q: select requires options", f.Name)
			}
		}
	}
	for _, color := range []string{
		c.Style.ButtonColor, c.Style.ButtonTextColor,
		c.Style.BackgroundColor, c.Style.TextColor,
	} {
		if color != "" {
			if err := ValidateHexColor(color); err != nil {
				return err
			}
		}
	}
	if c.Style.BorderRadius < 0 || c.Style.BorderRadius > 50 {
		return fmt.Errorf("borderRadius must be between 0 and 50")
	}
	return nil
}

// ValidateValues checks submitted form values against the config: every
// required field must be present and non-empty.
func (c *FormConfig) ValidateValues(values map[string]string) error {
	for _, f := range c.Fields {
		v := values[f.Name]
		if f.Required && v == "" {
			return fmt.Errorf("field %q is required", f.Name)
		}
		if v == "" {
			continue
		}
		switch f.Type {
		case "email":
			if err := ValidateEmail(v); err != nil {
				return fmt.Errorf("field %q: %w", f.Name, err)
			}
		case "tel":
			if err := ValidatePhone(v); err != nil {
				return fmt.Errorf("field %q: %w", f.Name, err)
			}
		}
	}
	return nil
}
