package port

type Validator interface {
	ValidateStruct(s interface{}) error
}
