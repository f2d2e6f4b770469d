package protocol

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewLogMessage creates a transcript/log message.
func NewLogMessage(id, text, role, language string) (*Message, error) {
	return NewMessage(TypeLog, LogData{
		ID:       id,
		Data:     text,
		Role:     role,
		Language: language,
	})
}

// NewStatusMessage creates a status banner message.
func NewStatusMessage(text string) (*Message, error) {
	return NewMessage(TypeStatus, StatusData{Data: text})
}

// NewStateMessage creates an assistant state snapshot message.
func NewStateMessage(state StateData) (*Message, error) {
	return NewMessage(TypeState, state)
}

// NewUserMessage creates a typed-command message.
func NewUserMessage(text string) (*Message, error) {
	return NewMessage(TypeUserMessage, UserMessageData{Data: text})
}

// NewToggleListeningMessage creates a toggle message. Pass nil to flip
// the current value.
func NewToggleListeningMessage(enabled *bool) (*Message, error) {
	return NewMessage(TypeToggleListening, ToggleListeningData{Enabled: enabled})
}

// NewChangeLanguageMessage creates a language change message.
func NewChangeLanguageMessage(language string) (*Message, error) {
	return NewMessage(TypeChangeLanguage, ChangeLanguageData{Language: language})
}

// NewPingMessage creates a ping message
func NewPingMessage(id string) (*Message, error) {
	return NewMessage(TypePing, PingData{
		ID:        id,
		Timestamp: 0, // Will be set by NewMessage
	})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return NewMessage(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// =============================================================================
// Helper functions for parsing messages
// =============================================================================

// GetLogData extracts log data from a message
func (m *Message) GetLogData() (*LogData, error) {
	var data LogData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStatusData extracts status data from a message
func (m *Message) GetStatusData() (*StatusData, error) {
	var data StatusData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStateData extracts state data from a message
func (m *Message) GetStateData() (*StateData, error) {
	var data StateData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetUserMessageData extracts a typed command from a message
func (m *Message) GetUserMessageData() (*UserMessageData, error) {
	var data UserMessageData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetToggleListeningData extracts toggle data from a message
func (m *Message) GetToggleListeningData() (*ToggleListeningData, error) {
	var data ToggleListeningData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetChangeLanguageData extracts language change data from a message
func (m *Message) GetChangeLanguageData() (*ChangeLanguageData, error) {
	var data ChangeLanguageData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPingData extracts ping data from a message
func (m *Message) GetPingData() (*PingData, error) {
	var data PingData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPongData extracts pong data from a message
func (m *Message) GetPongData() (*PongData, error) {
	var data PongData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
