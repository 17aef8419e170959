package image

import (
	"fmt"
	"strings"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/domain"
)

// BuildProductPrompt converts a product plus campaign context into the
// natural-language instruction handed to the generation engines. The fixed
// commercial qualifier keeps outputs on-style regardless of engine.
func BuildProductPrompt(product domain.Product, region string) string {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		name = "Product"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Professional product photography of %s", name)
	if desc := strings.TrimSpace(product.Description); desc != "" {
		fmt.Fprintf(&b, ", %s", desc)
	}
	b.WriteString(", high quality, commercial advertising style, clean background")
	if region != "" && region != "Global" {
		fmt.Fprintf(&b, ", targeting %s market", region)
	}
	return b.String()
}
