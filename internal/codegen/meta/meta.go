package meta

// ParamType is the semantic type of a described method parameter.
type ParamType string

const (
	ParamString     ParamType = "string"
	ParamStringList ParamType = "string[]"
)

// Param is one named parameter of a described method.
type Param struct {
	Name string    `json:"name"`
	Type ParamType `json:"type"`
}

// Method describes one method of a reflected object.
type Method struct {
	Name   string  `json:"name"`   // Go method name, e.g. "SubmitTransaction"
	Arity  int     `json:"arity"`  // number of formal parameters, receiver excluded
	Params []Param `json:"params"` // declared parameters, nil when the object declares none
}

// Describer is implemented by objects that publish their method parameters
// as data, keyed by Go method name.
type Describer interface {
	MethodParams() map[string][]Param
}

// Metadata holds everything the Engine interface generator needs.
type Metadata struct {
	Package   string   // Java package of the interface, e.g. "org.hyperledger.composer"
	Interface string   // interface name, e.g. "Engine"
	Version   string   // runtime version published as a constant
	Methods   []Method // in the reflected object's enumeration order
}
