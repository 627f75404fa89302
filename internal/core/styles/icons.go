package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Toast severity icons
var (
	IconNotifySuccess = "" //
	IconNotifyError   = "" //
	IconNotifyWarning = "" //
	IconNotifyInfo    = "" //
	IconPin           = "" //
)
