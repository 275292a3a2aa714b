package dialogue

import (
	"fmt"
	"strings"
)

type topic int

const (
	topicGeneric topic = iota
	topicDeepLearning
	topicMachineLearning
)

type agendaSection struct {
	title string
	items []string
}

var deepLearningAgenda = []agendaSection{
	{"Introduction to Deep Learning (15 min)", []string{
		"What is Deep Learning?",
		"Difference between ML, DL, and AI",
		"Applications (Computer Vision, NLP, Generative AI)",
	}},
	{"Key Architectures & Models (20 min)", []string{
		"CNNs (Convolutional Neural Networks) – Image processing",
		"RNNs, LSTMs, Transformers – Sequential data & NLP",
		"GANs, Diffusion Models – Generative AI & Image Synthesis",
	}},
	{"Hands-on Demo (30-45 min)", []string{
		"Image Classification with CNNs (e.g., TensorFlow/Keras)",
		"Text Generation with Transformers (e.g., OpenAI's GPT)",
		"Fine-tuning a Pre-trained Model (e.g., Hugging Face)",
	}},
	{"Real-World Use Cases (20 min)", []string{
		"Deep Learning in Industry (Finance, Healthcare, Autonomous Driving)",
		"Challenges: Data Bias, Interpretability, Compute Cost",
	}},
	{"Networking & Q&A (15-30 min)", []string{
		"Discuss career paths in Deep Learning",
		"Open discussion on industry trends & challenges",
	}},
}

var machineLearningAgenda = []agendaSection{
	{"Introduction to Machine Learning (15 min)", []string{
		"Overview of ML concepts and types",
		"Supervised vs. Unsupervised Learning",
		"Common applications",
	}},
	{"ML Algorithms Overview (20 min)", []string{
		"Classification algorithms (Decision Trees, SVM, etc.)",
		"Regression techniques",
		"Clustering and dimensionality reduction",
	}},
	{"Practical Workshop (30 min)", []string{
		"Building a simple ML model with scikit-learn",
		"Data preprocessing techniques",
		"Model evaluation and validation",
	}},
	{"Advanced Topics & Discussion (20 min)", []string{
		"Ensemble methods",
		"Feature engineering best practices",
		"Ethical considerations in ML",
	}},
	{"Q&A and Networking (15 min)", []string{
		"Career opportunities in ML",
		"Resources for further learning",
	}},
}

func genericAgenda(eventName string) []agendaSection {
	return []agendaSection{
		{"Introduction and Overview (15 min)", []string{
			"Welcome and introduction to the topic",
			"Key concepts and terminology",
			"Relevance to UW community",
		}},
		{"Main Presentation (30 min)", []string{
			fmt.Sprintf("Core content related to \"%s\"", eventName),
			"Recent developments and research",
			"Real-world applications",
		}},
		{"Interactive Session (20 min)", []string{
			"Hands-on activities",
			"Group discussions",
			"Q&A opportunities",
		}},
		{"Next Steps (15 min)", []string{
			"Resources for further learning",
			"Future events and connections",
			"Practical applications",
		}},
		{"Networking (20 min)", []string{
			"Meet fellow attendees",
			"Connect with speakers and experts",
			"Refreshments and informal discussions",
		}},
	}
}

// classifyTopic picks the agenda family for an event name. First match wins.
func classifyTopic(eventName string) topic {
	lower := strings.ToLower(eventName)
	switch {
	case strings.Contains(lower, "deep learning") || strings.Contains(lower, "ai"):
		return topicDeepLearning
	case strings.Contains(lower, "machine learning") || strings.Contains(lower, "ml"):
		return topicMachineLearning
	default:
		return topicGeneric
	}
}

// SuggestContent returns a five-section agenda for the named event.
func SuggestContent(eventName string) string {
	var sections []agendaSection
	switch classifyTopic(eventName) {
	case topicDeepLearning:
		sections = deepLearningAgenda
	case topicMachineLearning:
		sections = machineLearningAgenda
	default:
		sections = genericAgenda(eventName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Suggested content for %s:\n\n", eventName)
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.title)
		for _, item := range s.items {
			b.WriteString(item + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// TopicTags returns catalogue tags implied by an event name.
func TopicTags(eventName string) []string {
	switch classifyTopic(eventName) {
	case topicDeepLearning:
		return []string{"Deep Learning", "Neural Networks"}
	case topicMachineLearning:
		return []string{"Machine Learning"}
	default:
		return nil
	}
}
