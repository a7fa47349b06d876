// Package protection implements the heuristic prompt-injection scanner
// applied to message bodies before they are shown to the caller. The
// scanner scores text against weighted pattern classes; a score at or
// above the configured threshold blocks the read with a security error.
package protection

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/readnoevil/rnoe/internal/errors"
)

// pattern is one weighted detection rule.
type pattern struct {
	name   string
	weight float64
	re     *regexp.Regexp
}

// The pattern classes cover the common injection shapes: overriding
// prior instructions, hijacking the assistant role, coaxing credential
// exfiltration, driving tool invocation, and smuggling encoded payloads.
var defaultPatterns = []pattern{
	{
		name:   "instruction_override",
		weight: 0.5,
		re:     regexp.MustCompile(`(?i)(ignore|disregard|forget)\s+(all\s+|any\s+)?(previous|prior|above|earlier)\s+(instructions?|prompts?|messages?|rules?)`),
	},
	{
		name:   "role_hijack",
		weight: 0.4,
		re:     regexp.MustCompile(`(?i)(you\s+are\s+now|act\s+as|pretend\s+(to\s+be|you\s+are)|new\s+persona|system\s*prompt)`),
	},
	{
		name:   "credential_exfiltration",
		weight: 0.5,
		re:     regexp.MustCompile(`(?i)(send|forward|reveal|share|exfiltrate)\s+(me\s+|us\s+)?(your\s+|the\s+|all\s+)?(password|credential|secret|api\s*key|token)s?`),
	},
	{
		name:   "tool_invocation",
		weight: 0.4,
		re:     regexp.MustCompile(`(?i)(run|execute|invoke|call)\s+(the\s+|this\s+|a\s+)?(command|tool|function|script|shell)`),
	},
	{
		name:   "hidden_directive",
		weight: 0.3,
		re:     regexp.MustCompile(`(?i)(do\s+not\s+(tell|show|inform|mention)\s+(the\s+)?(user|human)|this\s+is\s+a\s+(system|hidden)\s+(message|instruction))`),
	},
	{
		name:   "encoded_payload",
		weight: 0.2,
		re:     regexp.MustCompile(`(?i)(decode|base64)\s+(and\s+)?(run|execute|follow|the\s+following)`),
	},
}

// Result is the outcome of scanning one text.
type Result struct {
	Score    float64
	Patterns []string
}

// Scanner scores text against the weighted pattern table.
type Scanner struct {
	patterns []pattern
}

// NewScanner returns a scanner with the default pattern table.
func NewScanner() *Scanner {
	return &Scanner{patterns: defaultPatterns}
}

// Scan scores the text. Weights of all matching classes accumulate and
// the score is clamped to [0, 1]. Scanning is pure: no state is kept
// between calls.
func (s *Scanner) Scan(text string) Result {
	var result Result
	for _, p := range s.patterns {
		if p.re.MatchString(text) {
			result.Score += p.weight
			result.Patterns = append(result.Patterns, p.name)
		}
	}
	if result.Score > 1 {
		result.Score = 1
	}
	return result
}

// Service gates content behind a scan threshold.
type Service struct {
	scanner   *Scanner
	threshold float64
}

// NewService returns a service enforcing the given threshold.
func NewService(scanner *Scanner, threshold float64) *Service {
	return &Service{scanner: scanner, threshold: threshold}
}

// Threshold returns the enforced threshold.
func (s *Service) Threshold() float64 {
	return s.threshold
}

// Check scans the text and returns a security error when the score
// reaches the threshold. The error carries the score and the names of
// the matched pattern classes.
func (s *Service) Check(text string) (Result, error) {
	result := s.scanner.Scan(text)
	if result.Score >= s.threshold {
		return result, errors.NewSecurityError(
			errors.ErrCodeInjectionDetected,
			fmt.Sprintf("prompt injection detected (score %.2f >= %.2f): %s",
				result.Score, s.threshold, strings.Join(result.Patterns, ", ")),
		).WithContext("score", result.Score).WithContext("patterns", result.Patterns)
	}
	return result, nil
}
