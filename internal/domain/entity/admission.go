package entity

// AdmissionState is the lifecycle of a single admission attempt.
type AdmissionState string

const (
	AdmissionIdle       AdmissionState = "idle"
	AdmissionSubmitting AdmissionState = "submitting"
	AdmissionSucceeded  AdmissionState = "succeeded"
	AdmissionFailed     AdmissionState = "failed"
)

func (s AdmissionState) Terminal() bool {
	return s == AdmissionSucceeded || s == AdmissionFailed
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a user-facing outcome message.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}
