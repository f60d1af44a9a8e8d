package engine

import (
	"errors"
	"io"
)

// DetectDuplicateKeys drains src and collects every repeated object key.
// maxIssues < 0 means unlimited; 0 disables collection; > 0 stops early.
// Syntax and I/O errors from src are returned with the issues found so far.
func DetectDuplicateKeys(src TokenSource, maxIssues int) ([]SimpleIssue, error) {
	if maxIssues == 0 {
		return nil, nil
	}
	var issues []SimpleIssue
	wrapped := WrapWithEnforcement(src, EnforceOptions{
		OnDuplicate: DupWarn,
		IssueSink: func(si SimpleIssue) {
			issues = append(issues, si)
		},
	})
	for {
		if maxIssues > 0 && len(issues) >= maxIssues {
			return issues, nil
		}
		_, err := wrapped.NextToken()
		if errors.Is(err, io.EOF) {
			return issues, nil
		}
		if err != nil {
			return issues, err
		}
	}
}
