package sharepoint

// SocialActorInfo identifies the actor of a social following request.
// Only ActorType is required; the other identifiers depend on the actor type.
type SocialActorInfo struct {
	AccountName string          `json:"AccountName,omitempty"`
	ActorType   SocialActorType `json:"ActorType"`
	ContentURI  string          `json:"ContentUri,omitempty"`
	ID          string          `json:"Id,omitempty"`
	TagGUID     string          `json:"TagGuid,omitempty"`
}

// SocialActor is an actor returned by social.following queries
type SocialActor struct {
	AccountName  string          `json:"AccountName"`
	ActorType    SocialActorType `json:"ActorType"`
	ContentURI   string          `json:"ContentUri"`
	EmailAddress string          `json:"EmailAddress"`
	ID           string          `json:"Id"`
	Name         string          `json:"Name"`
	URI          string          `json:"Uri"`
	TagGUID      string          `json:"TagGuid"`
}
