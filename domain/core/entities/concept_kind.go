package entities

import "strings"

// ConceptKind is the closed set of ArchiMate element and relationship types
type ConceptKind int

const (
	KindUnknown ConceptKind = iota

	// Strategy
	KindResource
	KindCapability
	KindValueStream
	KindCourseOfAction

	// Business
	KindBusinessActor
	KindBusinessRole
	KindBusinessCollaboration
	KindBusinessInterface
	KindBusinessProcess
	KindBusinessFunction
	KindBusinessInteraction
	KindBusinessEvent
	KindBusinessService
	KindBusinessObject
	KindContract
	KindRepresentation
	KindProduct

	// Application
	KindApplicationComponent
	KindApplicationCollaboration
	KindApplicationInterface
	KindApplicationFunction
	KindApplicationInteraction
	KindApplicationProcess
	KindApplicationEvent
	KindApplicationService
	KindDataObject

	// Technology & Physical
	KindNode
	KindDevice
	KindSystemSoftware
	KindTechnologyCollaboration
	KindTechnologyInterface
	KindPath
	KindCommunicationNetwork
	KindTechnologyFunction
	KindTechnologyProcess
	KindTechnologyInteraction
	KindTechnologyEvent
	KindTechnologyService
	KindArtifact
	KindEquipment
	KindFacility
	KindDistributionNetwork
	KindMaterial

	// Motivation
	KindStakeholder
	KindDriver
	KindAssessment
	KindGoal
	KindOutcome
	KindPrinciple
	KindRequirement
	KindConstraint
	KindMeaning
	KindValue

	// Implementation & Migration
	KindWorkPackage
	KindDeliverable
	KindImplementationEvent
	KindPlateau
	KindGap

	// Other
	KindLocation
	KindGrouping
	KindJunction

	// Relationships
	KindCompositionRelationship
	KindAggregationRelationship
	KindAssignmentRelationship
	KindRealizationRelationship
	KindServingRelationship
	KindAccessRelationship
	KindInfluenceRelationship
	KindTriggeringRelationship
	KindFlowRelationship
	KindSpecializationRelationship
	KindAssociationRelationship

	kindCount
)

type kindInfo struct {
	name   string
	folder FolderType
}

var kindTable = [kindCount]kindInfo{
	KindUnknown: {"", ""},

	KindResource:       {"Resource", FolderStrategy},
	KindCapability:     {"Capability", FolderStrategy},
	KindValueStream:    {"ValueStream", FolderStrategy},
	KindCourseOfAction: {"CourseOfAction", FolderStrategy},

	KindBusinessActor:         {"BusinessActor", FolderBusiness},
	KindBusinessRole:          {"BusinessRole", FolderBusiness},
	KindBusinessCollaboration: {"BusinessCollaboration", FolderBusiness},
	KindBusinessInterface:     {"BusinessInterface", FolderBusiness},
	KindBusinessProcess:       {"BusinessProcess", FolderBusiness},
	KindBusinessFunction:      {"BusinessFunction", FolderBusiness},
	KindBusinessInteraction:   {"BusinessInteraction", FolderBusiness},
	KindBusinessEvent:         {"BusinessEvent", FolderBusiness},
	KindBusinessService:       {"BusinessService", FolderBusiness},
	KindBusinessObject:        {"BusinessObject", FolderBusiness},
	KindContract:              {"Contract", FolderBusiness},
	KindRepresentation:        {"Representation", FolderBusiness},
	KindProduct:               {"Product", FolderBusiness},

	KindApplicationComponent:     {"ApplicationComponent", FolderApplication},
	KindApplicationCollaboration: {"ApplicationCollaboration", FolderApplication},
	KindApplicationInterface:     {"ApplicationInterface", FolderApplication},
	KindApplicationFunction:      {"ApplicationFunction", FolderApplication},
	KindApplicationInteraction:   {"ApplicationInteraction", FolderApplication},
	KindApplicationProcess:       {"ApplicationProcess", FolderApplication},
	KindApplicationEvent:         {"ApplicationEvent", FolderApplication},
	KindApplicationService:       {"ApplicationService", FolderApplication},
	KindDataObject:               {"DataObject", FolderApplication},

	KindNode:                    {"Node", FolderTechnology},
	KindDevice:                  {"Device", FolderTechnology},
	KindSystemSoftware:          {"SystemSoftware", FolderTechnology},
	KindTechnologyCollaboration: {"TechnologyCollaboration", FolderTechnology},
	KindTechnologyInterface:     {"TechnologyInterface", FolderTechnology},
	KindPath:                    {"Path", FolderTechnology},
	KindCommunicationNetwork:    {"CommunicationNetwork", FolderTechnology},
	KindTechnologyFunction:      {"TechnologyFunction", FolderTechnology},
	KindTechnologyProcess:       {"TechnologyProcess", FolderTechnology},
	KindTechnologyInteraction:   {"TechnologyInteraction", FolderTechnology},
	KindTechnologyEvent:         {"TechnologyEvent", FolderTechnology},
	KindTechnologyService:       {"TechnologyService", FolderTechnology},
	KindArtifact:                {"Artifact", FolderTechnology},
	KindEquipment:               {"Equipment", FolderTechnology},
	KindFacility:                {"Facility", FolderTechnology},
	KindDistributionNetwork:     {"DistributionNetwork", FolderTechnology},
	KindMaterial:                {"Material", FolderTechnology},

	KindStakeholder: {"Stakeholder", FolderMotivation},
	KindDriver:      {"Driver", FolderMotivation},
	KindAssessment:  {"Assessment", FolderMotivation},
	KindGoal:        {"Goal", FolderMotivation},
	KindOutcome:     {"Outcome", FolderMotivation},
	KindPrinciple:   {"Principle", FolderMotivation},
	KindRequirement: {"Requirement", FolderMotivation},
	KindConstraint:  {"Constraint", FolderMotivation},
	KindMeaning:     {"Meaning", FolderMotivation},
	KindValue:       {"Value", FolderMotivation},

	KindWorkPackage:         {"WorkPackage", FolderImplementationMigration},
	KindDeliverable:         {"Deliverable", FolderImplementationMigration},
	KindImplementationEvent: {"ImplementationEvent", FolderImplementationMigration},
	KindPlateau:             {"Plateau", FolderImplementationMigration},
	KindGap:                 {"Gap", FolderImplementationMigration},

	KindLocation: {"Location", FolderOther},
	KindGrouping: {"Grouping", FolderOther},
	KindJunction: {"Junction", FolderOther},

	KindCompositionRelationship:    {"CompositionRelationship", FolderRelations},
	KindAggregationRelationship:    {"AggregationRelationship", FolderRelations},
	KindAssignmentRelationship:     {"AssignmentRelationship", FolderRelations},
	KindRealizationRelationship:    {"RealizationRelationship", FolderRelations},
	KindServingRelationship:        {"ServingRelationship", FolderRelations},
	KindAccessRelationship:         {"AccessRelationship", FolderRelations},
	KindInfluenceRelationship:      {"InfluenceRelationship", FolderRelations},
	KindTriggeringRelationship:     {"TriggeringRelationship", FolderRelations},
	KindFlowRelationship:           {"FlowRelationship", FolderRelations},
	KindSpecializationRelationship: {"SpecializationRelationship", FolderRelations},
	KindAssociationRelationship:    {"AssociationRelationship", FolderRelations},
}

var kindsByName = func() map[string]ConceptKind {
	m := make(map[string]ConceptKind, kindCount)
	for k := KindUnknown + 1; k < kindCount; k++ {
		m[strings.ToLower(kindTable[k].name)] = k
	}
	return m
}()

// ParseConceptKind maps a type name such as "BusinessActor" or
// "AssignmentRelationship" to its kind. Matching ignores case.
func ParseConceptKind(name string) (ConceptKind, bool) {
	k, ok := kindsByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// String returns the type name used in CSV and archive files
func (k ConceptKind) String() string {
	if !k.IsValid() {
		return "Unknown"
	}
	return kindTable[k].name
}

// IsValid reports whether k is a member of the enumeration
func (k ConceptKind) IsValid() bool {
	return k > KindUnknown && k < kindCount
}

// IsRelationship reports whether k is a relationship kind
func (k ConceptKind) IsRelationship() bool {
	return k >= KindCompositionRelationship && k < kindCount
}

// IsElement reports whether k is an element kind
func (k ConceptKind) IsElement() bool {
	return k > KindUnknown && k < KindCompositionRelationship
}

// Folder returns the top-level folder a concept of this kind lives in
func (k ConceptKind) Folder() FolderType {
	if !k.IsValid() {
		return ""
	}
	return kindTable[k].folder
}

// AllKinds returns every valid kind in declaration order
func AllKinds() []ConceptKind {
	kinds := make([]ConceptKind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
