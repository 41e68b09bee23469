package component

// Portal moves the player to NextStage on contact.
type Portal struct {
	NextStage int
	Used      bool
}

var PortalComponent = NewComponent[Portal]()
