package ai

import (
	"reflect"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    sample
		wantErr bool
	}{
		{
			name:  "plain json",
			input: `{"name": "a", "count": 2}`,
			want:  sample{Name: "a", Count: 2},
		},
		{
			name:  "fenced json",
			input: "```json\n{\"name\": \"b\", \"count\": 3}\n```",
			want:  sample{Name: "b", Count: 3},
		},
		{
			name:  "double encoded",
			input: `"{\"name\": \"c\", \"count\": 4}"`,
			want:  sample{Name: "c", Count: 4},
		},
		{
			name:  "malformed but repairable",
			input: `{name: 'd', count: 5,}`,
			want:  sample{Name: "d", Count: 5},
		},
		{
			name:    "hopeless input",
			input:   `the model refused to answer`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			err := UnmarshalFlexible(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalFlexible() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnmarshalFlexible() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGenerateSchemaAnalyzeResult(t *testing.T) {
	schema := GenerateSchema(AnalyzeResult{})
	if schema == nil {
		t.Fatal("GenerateSchema returned nil")
	}
}
