// Package notify reports workflow progress to the operator.
//
// The release workflow emits an Event per completed step; Notifier
// implementations render them. ConsoleNotifier prints the colorized
// status lines a terminal user sees, LogNotifier records structured
// events via log/slog, MultiNotifier fans out to several notifiers and
// NopNotifier discards everything (tests).
package notify
