// Package vision reaches the external captioning and vision services
// the classifiers can consult. Everything here is glue around remote
// models; no classification logic lives in this package.
//
// Two collaborator shapes are served:
//
//   - Captioning: HTTPCaptioner uploads the image to an inference
//     endpoint and returns its one-line description. CachingCaptioner
//     wraps any captioner with an exact-plus-perceptual cache.
//   - Recognition: a CredentialChain tries an ordered list of
//     Providers (OpenAIProvider per credential, OllamaProvider for a
//     local model), advancing past providers whose quota is exhausted.
//
// # Degradation protocol
//
// The recognition side never surfaces transport errors. A failed or
// exhausted chain answers with a DegradedPrefix-marked string and a nil
// error; callers check IsDegraded and fall back to local analysis. The
// captioning side does the opposite: it returns plain errors and leaves
// the fallback decision to the classification layer.
package vision
