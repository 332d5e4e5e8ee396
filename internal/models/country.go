package models

// Country is one entry of the dialing-code reference list.
type Country struct {
	Name     string `json:"name" yaml:"name"`
	DialCode string `json:"dial_code" yaml:"dial_code"`
	Code     string `json:"code" yaml:"code"`
	Flag     string `json:"flag" yaml:"flag"`
}
