package intent

import "testing"

func TestExtractIntent(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantStatus ParseStatus
		wantTool   Tool
		wantParams map[string]string
	}{
		{
			name:       "bare json",
			raw:        `{"tool": "open_app", "parameters": {"app_name": "chrome"}}`,
			wantStatus: ParseOK,
			wantTool:   ToolOpenApp,
			wantParams: map[string]string{"app_name": "chrome"},
		},
		{
			name:       "json wrapped in prose",
			raw:        `Sure! Here is the classification: {"tool": "search_web", "parameters": {"query": "weather"}} Hope that helps!`,
			wantStatus: ParseOK,
			wantTool:   ToolSearchWeb,
			wantParams: map[string]string{"query": "weather"},
		},
		{
			name:       "json in code fence",
			raw:        "```json\n{\"tool\": \"play_media\", \"parameters\": {\"query\": \"coolie songs\", \"platform\": \"youtube\"}}\n```",
			wantStatus: ParseOK,
			wantTool:   ToolPlayMedia,
			wantParams: map[string]string{"query": "coolie songs", "platform": "youtube"},
		},
		{
			name:       "missing parameters defaults to empty map",
			raw:        `{"tool": "general_chat"}`,
			wantStatus: ParseOK,
			wantTool:   ToolGeneralChat,
			wantParams: map[string]string{},
		},
		{
			name:       "numeric parameter coerced",
			raw:        `{"tool": "system_control", "parameters": {"action": "sleep", "delay": 5}}`,
			wantStatus: ParseOK,
			wantTool:   ToolSystemControl,
			wantParams: map[string]string{"action": "sleep", "delay": "5"},
		},
		{
			name:       "empty string",
			raw:        "",
			wantStatus: ParseEmpty,
		},
		{
			name:       "whitespace only",
			raw:        "   \n\t  ",
			wantStatus: ParseEmpty,
		},
		{
			name:       "no braces",
			raw:        "I would classify this as an app opening command.",
			wantStatus: ParseMalformed,
		},
		{
			name:       "broken json",
			raw:        `{"tool": "open_app", "parameters": {`,
			wantStatus: ParseMalformed,
		},
		{
			name:       "json without tool key",
			raw:        `{"parameters": {"app_name": "chrome"}}`,
			wantStatus: ParseMalformed,
		},
		{
			name:       "braces out of order",
			raw:        "} nothing useful {",
			wantStatus: ParseMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, status := ExtractIntent(tt.raw)
			if status != tt.wantStatus {
				t.Fatalf("ExtractIntent() status = %s, want %s", status, tt.wantStatus)
			}
			if status != ParseOK {
				return
			}
			if in.Tool != tt.wantTool {
				t.Errorf("Tool = %s, want %s", in.Tool, tt.wantTool)
			}
			if len(in.Params) != len(tt.wantParams) {
				t.Errorf("Params = %v, want %v", in.Params, tt.wantParams)
			}
			for key, want := range tt.wantParams {
				if got := in.Param(key); got != want {
					t.Errorf("Param(%q) = %q, want %q", key, got, want)
				}
			}
		})
	}
}

func TestParseStatusString(t *testing.T) {
	if ParseOK.String() != "ok" || ParseMalformed.String() != "malformed" || ParseEmpty.String() != "empty" {
		t.Error("Unexpected ParseStatus string values")
	}
}
