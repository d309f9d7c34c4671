package analyzeprofile

import "admission-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"analysisId": {
				Type:        "string",
				Description: "Identifier assigned upstream, generated when absent",
			},
			"normalizedProfile": {
				Type:        "object",
				Description: "Profile emitted by the validation step",
			},
			"profile": {
				Type:        "object",
				Description: "Raw submitted profile, used when no normalized profile is present",
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"analysisId": {
				Type:        "string",
				Description: "Identifier of the computed analysis",
			},
			"analysis": {
				Type:        "object",
				Description: "Full analysis result with grades, chances, and plan",
			},
			"createdAt": {
				Type:        "string",
				Description: "Timestamp when the analysis was computed",
			},
		},
		AdditionalProperties: true,
	}
}
