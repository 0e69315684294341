package data

import "strings"

// receiptKeys lists the conventional delivery-receipt fields in the order
// they appear in DeliverSm.short_message text, per spec.md section 6. "submit
// date" and "done date" contain a literal space, so they can't be split on
// whitespace alone; the parser below scans key-by-key instead.
var receiptKeys = []string{
	"id", "sub", "dlvrd", "submit date", "done date", "stat", "err", "text",
}

// ParseReceipt parses the conventional delivery-receipt text carried in a
// deliver_sm short_message into the dictionary described in spec.md section
// 6. Missing fields are omitted rather than present with an empty value.
// Grounded on original_source/aiosmpplib's DeliverSm.get_receipt_param
// closure, which tolerates vendor divergence in exactly this way.
func ParseReceipt(text string) map[string]string {
	result := make(map[string]string)
	for i, key := range receiptKeys {
		marker := key + ":"
		idx := strings.Index(text, marker)
		if idx < 0 {
			continue
		}
		start := idx + len(marker)
		end := len(text)
		// The value runs until the next known key's marker appears.
		for j := i + 1; j < len(receiptKeys); j++ {
			nextMarker := receiptKeys[j] + ":"
			if nIdx := strings.Index(text[start:], nextMarker); nIdx >= 0 {
				candidate := start + nIdx
				if candidate < end {
					end = candidate
				}
				break
			}
		}
		value := strings.TrimSpace(text[start:end])
		if value != "" {
			result[key] = value
		}
	}
	return result
}
