package sharepoint

// ContentType describes an SP.ContentType
type ContentType struct {
	ID          string
	Name        string
	Description string
	Group       string
	Hidden      bool
	ReadOnly    bool
}

// ClientSidePageComponent is a client side web part definition
// returned by _api/web/GetClientSideWebParts.
type ClientSidePageComponent struct {
	ComponentType int    `json:"ComponentType"`
	ID            string `json:"Id"`
	Manifest      string `json:"Manifest"`
	ManifestType  int    `json:"ManifestType"`
	Name          string `json:"Name"`
	Status        int    `json:"Status"`
}
