package category

import "strings"

// OrganizeHeaders reorders headers so each UA variant sits immediately
// after its best-matching non-UA base header. Matching is tiered: exact
// normalized match, then normalized substring, then raw substring.
// Unmatched UA headers are appended at the end. Output is deterministic
// for a given input.
func OrganizeHeaders(headers []string) []string {
	var uaHeaders, baseHeaders []string
	for _, h := range headers {
		if strings.HasSuffix(strings.ToUpper(strings.TrimSpace(h)), " UA") {
			uaHeaders = append(uaHeaders, h)
		} else {
			baseHeaders = append(baseHeaders, h)
		}
	}

	uaToBase := make(map[string]string, len(uaHeaders))

	for _, ua := range uaHeaders {
		uaUpper := strings.TrimSpace(strings.ToUpper(ua))
		uaRaw := strings.TrimSpace(uaUpper[:len(uaUpper)-3])
		uaNorm := stripLocationPrefix(uaRaw)

		var bestMatch string
		bestScore := 0

		for _, base := range baseHeaders {
			baseUpper := strings.TrimSpace(strings.ToUpper(base))
			baseNorm := stripLocationPrefix(baseUpper)

			if uaNorm == baseNorm {
				bestMatch = base
				break
			}

			// Normalized substring outranks any raw substring match.
			if strings.Contains(uaNorm, baseNorm) && len(baseNorm)+100 > bestScore {
				bestMatch = base
				bestScore = len(baseNorm) + 100
			} else if strings.Contains(baseNorm, uaNorm) && len(uaNorm)+100 > bestScore {
				bestMatch = base
				bestScore = len(uaNorm) + 100
			}

			if strings.Contains(uaRaw, baseUpper) && len(baseUpper) > bestScore && bestScore < 100 {
				bestMatch = base
				bestScore = len(baseUpper)
			}
		}

		if bestMatch != "" {
			uaToBase[ua] = bestMatch
		}
	}

	result := make([]string, 0, len(headers))
	placed := make(map[string]bool, len(uaHeaders))

	for _, base := range baseHeaders {
		result = append(result, base)
		for _, ua := range uaHeaders {
			if !placed[ua] && uaToBase[ua] == base {
				result = append(result, ua)
				placed[ua] = true
			}
		}
	}

	for _, ua := range uaHeaders {
		if !placed[ua] {
			result = append(result, ua)
		}
	}

	return result
}

// stripLocationPrefix removes a leading INT/EXT/INTERIOR/EXTERIOR from
// a header so UA variants compare against their base names.
func stripLocationPrefix(h string) string {
	for _, prefix := range []string{"INTERIOR ", "EXTERIOR ", "INT ", "EXT "} {
		if strings.HasPrefix(h, prefix) {
			h = strings.TrimSpace(h[len(prefix):])
			break
		}
	}
	return strings.TrimLeft(h, "/ -&")
}
