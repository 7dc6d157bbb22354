package domain

// Secret envuelve un valor sensible y se redacta al formatearse.
// Comparaciones e igualdad siguen operando sobre el valor real.
type Secret string

const redactedPlaceholder = "[REDACTED]"

func (s Secret) String() string {
	return redactedPlaceholder
}

func (s Secret) GoString() string {
	return redactedPlaceholder
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedPlaceholder + `"`), nil
}

// Expose devuelve el valor subyacente; unico punto de acceso explicito.
func (s Secret) Expose() string {
	return string(s)
}
