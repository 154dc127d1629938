package estimate

import "fmt"

// Prompt builds the production estimate request for a commod
func Prompt(commod string) string {
	return fmt.Sprintf(`Provide the most recent estimated total production of %s in India
for the 2023–2024 crop year, based on government or FAO statistics.
Return only a numeric value in million tons (e.g., rice ~140–150).
Do not return unrealistically large numbers. Only provide the numeric value.`, commod)
}
