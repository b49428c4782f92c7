package response

import (
	"kennel-registry/internal/data/entity"
	"kennel-registry/internal/pedigree"
)

// PedigreeNode is one slot of the tree. Unknown ancestors have known=false,
// no id and the name "Unknown".
type PedigreeNode struct {
	ID                 *string       `json:"id"`
	Known              bool          `json:"known"`
	RegisteredName     string        `json:"registeredName"`
	RegistrationNumber *string       `json:"registrationNumber,omitempty"`
	Sex                entity.DogSex `json:"sex,omitempty"`
	DateOfBirth        *string       `json:"dateOfBirth,omitempty"`
	Sire               *PedigreeNode `json:"sire,omitempty"`
	Dam                *PedigreeNode `json:"dam,omitempty"`
}

type PedigreeResponse struct {
	Generations int           `json:"generations"`
	Tree        *PedigreeNode `json:"tree"`
}

func PedigreeToResponse(tree *pedigree.Node, generations int) PedigreeResponse {
	return PedigreeResponse{Generations: generations, Tree: nodeToResponse(tree)}
}

func nodeToResponse(n *pedigree.Node) *PedigreeNode {
	if n == nil {
		return nil
	}
	out := &PedigreeNode{
		Known:          n.Known(),
		RegisteredName: n.Name(),
		Sire:           nodeToResponse(n.Sire),
		Dam:            nodeToResponse(n.Dam),
	}
	if n.Known() {
		id := n.Dog.ID.String()
		out.ID = &id
		out.RegistrationNumber = n.Dog.RegistrationNumber
		out.Sex = n.Dog.Sex
		out.DateOfBirth = formatDate(n.Dog.DateOfBirth)
	}
	return out
}

type InbreedingResponse struct {
	DogID           string       `json:"dogId"`
	Coefficient     float64      `json:"coefficient"`
	Percent         float64      `json:"percent"`
	Generations     int          `json:"generations"`
	CommonAncestors []DogSummary `json:"commonAncestors"`
	Stored          *float64     `json:"stored"`
}

func InbreedingToResponse(dog *entity.Dog, res *pedigree.Inbreeding) InbreedingResponse {
	return InbreedingResponse{
		DogID:           dog.ID.String(),
		Coefficient:     res.Coefficient,
		Percent:         res.Coefficient * 100,
		Generations:     res.Generations,
		CommonAncestors: DogsToSummaries(res.CommonAncestors),
		Stored:          dog.InbreedingCoefficient,
	}
}
