package services

// Helpers for decoding JSON-decoded GraphQL variables. JSON numbers
// arrive as float64; object values as map[string]interface{}.

func stringVar(vars map[string]interface{}, key string) (string, bool, error) {
	raw, ok := vars[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, validationErr("%q must be a string", key)
	}
	return s, true, nil
}

func requiredStringVar(vars map[string]interface{}, key string) (string, error) {
	s, ok, err := stringVar(vars, key)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", validationErr("%q is required", key)
	}
	return s, nil
}

func intVar(vars map[string]interface{}, key string) (int, bool, error) {
	raw, ok := vars[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false, validationErr("%q must be an integer", key)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	}
	return 0, false, validationErr("%q must be an integer", key)
}

func mapVar(vars map[string]interface{}, key string) (map[string]interface{}, bool, error) {
	raw, ok := vars[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false, validationErr("%q must be an object", key)
	}
	return m, true, nil
}

func stringField(m map[string]interface{}, key string) (string, bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, validationErr("%q must be a string", key)
	}
	return s, true, nil
}

func floatField(m map[string]interface{}, key string) (*float64, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	v, ok := raw.(float64)
	if !ok {
		return nil, validationErr("%q must be a number", key)
	}
	return &v, nil
}
