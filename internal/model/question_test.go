package model

import "testing"

func TestNormalizeQuestionType(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionType
	}{
		{"MCQ", QuestionTypeMCQ},
		{" short ", QuestionTypeShort},
		{"Long", QuestionTypeLong},
		{"", ""},
		{"short answer", ""},
		{"Fill in the blank", ""},
	}
	for _, tt := range tests {
		if got := NormalizeQuestionType(tt.in); got != tt.want {
			t.Errorf("NormalizeQuestionType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
