package events

import "reflect"

// ExtractGameID returns the GameID field of an event, or "" if it has none
func ExtractGameID(event Event) string {
	val := reflect.ValueOf(event)

	// If it's a pointer, get the underlying element
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return ""
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return ""
	}

	gameID := val.FieldByName("GameID")
	if gameID.IsValid() && gameID.Kind() == reflect.String {
		return gameID.String()
	}

	return ""
}
