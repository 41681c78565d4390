package entities

// DialogVerdict is what a native alert/confirm message means for the flow
type DialogVerdict string

const (
	DialogSuccess   DialogVerdict = "success"
	DialogDuplicate DialogVerdict = "duplicate"
	DialogRejected  DialogVerdict = "rejected"
	DialogUnknown   DialogVerdict = "unknown"
)

// DialogOutcome is a dialog the suite accepted on the user's behalf
type DialogOutcome struct {
	Type    string        `json:"type"`
	Message string        `json:"message"`
	Verdict DialogVerdict `json:"verdict"`
	// ID is the customer id or account number the app reported, if any
	ID string `json:"id,omitempty"`
}
