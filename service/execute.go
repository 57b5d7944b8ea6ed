package service

import (
	"context"
	"strings"
)

// executeQuery runs a resolved query against storage and normalizes the
// result: reads yield an ordered slice of row mappings, everything else
// a mapping with the affected-row count. Storage failures are converted
// to an error mapping, never propagated, so the pipeline always reaches
// the responder.
func (s *service) executeQuery(ctx context.Context, query string) interface{} {
	if isReadOnly(query) {
		rows, err := s.repo.RunSelect(ctx, query)
		if err != nil {
			s.logger.PrintError(err, map[string]string{"query": query})
			return map[string]interface{}{"error": err.Error()}
		}
		return rows
	}
	affected, err := s.repo.RunMutation(ctx, query)
	if err != nil {
		s.logger.PrintError(err, map[string]string{"query": query})
		return map[string]interface{}{"error": err.Error()}
	}
	return map[string]interface{}{"rows_affected": affected}
}

// isReadOnly reports whether the trimmed, case-normalized query text
// begins with the read keyword.
func isReadOnly(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT")
}
