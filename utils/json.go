package utils

import "github.com/goccy/go-json"

func StructToBytes(s interface{}) ([]byte, error) {
	return json.Marshal(s)
}

func BytesToStruct(data []byte, s interface{}) error {
	return json.Unmarshal(data, s)
}

// StructToString encodes s as a JSON string, the form values take in session stores.
func StructToString(s interface{}) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// StringToStruct decodes a JSON string produced by StructToString.
func StringToStruct(data string, s interface{}) error {
	return json.Unmarshal([]byte(data), s)
}
