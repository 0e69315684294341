// Package data defines the SMPP 3.4 constant catalogue (command IDs, status
// codes, type-of-number/numbering-plan enumerations, data-coding schemes) and
// the text encoders used to convert between application strings and the
// wire-level DCS byte encodings.
package data

import "fmt"

// CommandID identifies the kind of PDU carried by a frame.
type CommandID uint32

// Command identifiers per SMPP 3.4 section 5.1.2.1.
const (
	GenericNackID        CommandID = 0x80000000
	BindReceiverID       CommandID = 0x00000001
	BindReceiverRespID   CommandID = 0x80000001
	BindTransmitterID    CommandID = 0x00000002
	BindTransmitterRespID CommandID = 0x80000002
	QuerySMID            CommandID = 0x00000003
	QuerySMRespID        CommandID = 0x80000003
	SubmitSMID           CommandID = 0x00000004
	SubmitSMRespID       CommandID = 0x80000004
	DeliverSMID          CommandID = 0x00000005
	DeliverSMRespID      CommandID = 0x80000005
	UnbindID             CommandID = 0x00000006
	UnbindRespID         CommandID = 0x80000006
	ReplaceSMID          CommandID = 0x00000007
	ReplaceSMRespID      CommandID = 0x80000007
	CancelSMID           CommandID = 0x00000008
	CancelSMRespID       CommandID = 0x80000008
	BindTransceiverID    CommandID = 0x00000009
	BindTransceiverRespID CommandID = 0x80000009
	OutbindID            CommandID = 0x0000000B
	EnquireLinkID        CommandID = 0x00000015
	EnquireLinkRespID    CommandID = 0x80000015
	DataSMID             CommandID = 0x00000103
	DataSMRespID         CommandID = 0x80000103
	AlertNotificationID  CommandID = 0x00000102
)

// IsResponse reports whether the command id represents a response PDU. Per
// SMPP 3.4, every response command id is its request's id with the
// most-significant bit set (generic_nack and alert_notification/outbind
// aside, which have no paired partner).
func (c CommandID) IsResponse() bool {
	return c&0x80000000 != 0
}

// ResponseID returns the response command id paired with a request command
// id. Commands with no response (outbind, alert_notification) return 0.
func (c CommandID) ResponseID() CommandID {
	switch c {
	case OutbindID, AlertNotificationID, GenericNackID:
		return 0
	default:
		return c | 0x80000000
	}
}

var commandNames = map[CommandID]string{
	GenericNackID:         "generic_nack",
	BindReceiverID:        "bind_receiver",
	BindReceiverRespID:    "bind_receiver_resp",
	BindTransmitterID:     "bind_transmitter",
	BindTransmitterRespID: "bind_transmitter_resp",
	QuerySMID:             "query_sm",
	QuerySMRespID:         "query_sm_resp",
	SubmitSMID:            "submit_sm",
	SubmitSMRespID:        "submit_sm_resp",
	DeliverSMID:           "deliver_sm",
	DeliverSMRespID:       "deliver_sm_resp",
	UnbindID:              "unbind",
	UnbindRespID:          "unbind_resp",
	ReplaceSMID:           "replace_sm",
	ReplaceSMRespID:       "replace_sm_resp",
	CancelSMID:            "cancel_sm",
	CancelSMRespID:        "cancel_sm_resp",
	BindTransceiverID:     "bind_transceiver",
	BindTransceiverRespID: "bind_transceiver_resp",
	OutbindID:             "outbind",
	EnquireLinkID:         "enquire_link",
	EnquireLinkRespID:     "enquire_link_resp",
	DataSMID:              "data_sm",
	DataSMRespID:          "data_sm_resp",
	AlertNotificationID:   "alert_notification",
}

// String returns the SMPP 3.4 mnemonic for the command id, or its hex
// value if unrecognized.
func (c CommandID) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(c))
}

// BindingType selects which bind PDU (and resulting session mode) a session
// uses to authenticate with the SMSC.
type BindingType int

const (
	Transmitter BindingType = iota
	Receiver
	Transceiver
)

func (b BindingType) String() string {
	switch b {
	case Transmitter:
		return "transmitter"
	case Receiver:
		return "receiver"
	case Transceiver:
		return "transceiver"
	default:
		return "unknown"
	}
}

// CommandID returns the bind command id for a binding type.
func (b BindingType) CommandID() CommandID {
	switch b {
	case Transmitter:
		return BindTransmitterID
	case Receiver:
		return BindReceiverID
	default:
		return BindTransceiverID
	}
}
