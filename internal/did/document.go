package did

// ContextV1 is the DID core JSON-LD context.
const ContextV1 = "https://www.w3.org/ns/did/v1"

// Document is a DID Document.
type Document struct {
	Context            string               `json:"@context"`
	ID                 string               `json:"id"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Service            []ServiceEndpoint    `json:"service"`
	Created            string               `json:"created"`
	Updated            string               `json:"updated"`
	Proof              *Proof               `json:"proof,omitempty"`
}

// VerificationMethod is a public key entry of a DID Document.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase"`
}

// ServiceEndpoint advertises a service reachable for the DID subject.
type ServiceEndpoint struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// Proof is the document-level proof block.
type Proof struct {
	Type               string `json:"type"`
	VerificationMethod string `json:"verificationMethod"`
	SignatureValue     string `json:"signatureValue"`
}
