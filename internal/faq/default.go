package faq

import "gitee.com/taoJie_1/health-chat/model/enum"

func text(trigger, content string) Entry {
	return Entry{Trigger: trigger, Response: Text(content)}
}

func navigation(trigger, content, action string) Entry {
	return Entry{Trigger: trigger, Response: Response{Type: enum.ResponseNavigation, Content: content, Action: action}}
}

func list(trigger, content string, items ...string) Entry {
	return Entry{Trigger: trigger, Response: Response{Type: enum.ResponseList, Content: content, Items: items}}
}

const confidentiality = "Yes. Your data is handled with strict confidentiality. We do not sell or share personal health information with third parties. All records are stored securely and used only for assessment and support purposes."

// Default 内置FAQ表, 顺序即匹配优先级
func Default() []Entry {
	return []Entry{
		text("what is this website for", "This platform is an AI-powered Smart Healthcare Early Risk Assessment System designed to help individuals evaluate potential risks for conditions such as diabetes and heart disease. It provides early insights, preventive guidance, and access to healthcare support resources."),
		text("how does this website work", "The system collects health-related inputs from you and analyzes them using machine learning models trained on medical datasets. Based on your responses, it estimates your risk probability and provides preventive recommendations."),
		text("is my personal information secure", confidentiality),
		text("is my data secure", confidentiality),
		text("what precautions should i take", "Preventive measures depend on your assessed risk level. Generally, maintaining a balanced diet, exercising regularly, managing stress, and scheduling routine health check-ups significantly reduce health risks."),
		text("what is diabetes", "Diabetes is a chronic condition where the body either does not produce enough insulin or cannot effectively use it, leading to elevated blood sugar levels over time."),
		text("what is heart disease", "Heart disease refers to various conditions affecting the heart, including coronary artery disease, arrhythmias, and heart failure. It is often linked to lifestyle factors and genetics."),
		text("how accurate is the prediction", "The prediction is based on trained machine learning models and statistical analysis. While it provides strong indications, it is not a medical diagnosis and should not replace professional consultation."),
		text("is this a replacement for a doctor", "No. This system is an early risk assessment tool. It does not replace medical professionals. Always consult a qualified doctor for diagnosis and treatment."),
		text("how is my data stored", "Your data is securely stored in protected databases with controlled access. Security protocols are implemented to prevent unauthorized access."),
		text("can i delete my data", "Yes. You may request deletion of your data through your account settings or by contacting support."),
		text("how often should i take the assessment", "It is recommended to reassess every 3–6 months, or sooner if there are significant lifestyle or health changes."),
		text("what does high risk mean", "A high-risk result indicates a strong probability of developing or already having risk indicators for a condition. You should consult a healthcare professional promptly."),
		text("what does moderate risk mean", "Moderate risk suggests potential concern areas. Lifestyle modifications and preventive monitoring are advised."),
		text("what does low risk mean", "Low risk indicates minimal current indicators. Maintaining healthy habits is recommended to stay in this range."),
		text("who built this system", "This system was developed as a Smart Healthcare initiative combining machine learning, preventive healthcare analytics, and structured medical guidelines."),
		text("is this service free", "Basic risk assessments are available for free. Additional advanced features may vary depending on system configuration."),
		text("can i download my report", "Yes. After completing an assessment, you can download a detailed health risk report for your records."),
		text("where can i consult a doctor", "You can visit the Doctors section to view available specialists and consultation options."),
		text("are government schemes available", "Yes. We provide information about public healthcare schemes that may support eligible individuals."),
		text("is this ai based", "Yes. The system uses machine learning algorithms to analyze patterns in medical data and generate risk predictions."),
		text("how is ai used here", "AI analyzes health parameters and compares them with patterns learned from large datasets to estimate risk probabilities."),
		text("can i use this on mobile", "Yes. The platform is fully responsive and optimized for mobile devices."),
		text("is my chat saved", "Chat conversations may be stored to improve user experience and system performance, but sensitive information is protected."),
		text("what if i get high risk", "If you receive a high-risk result, consult a doctor immediately. Early intervention significantly improves outcomes."),
		navigation("take me to assessment", "You can start your health risk assessment below.", "/predict"),
		navigation("take me to precautions", "You can explore preventive healthcare guidance below.", "/precautions"),
		navigation("take me to doctors", "You can view available doctors below.", "/doctors"),
		navigation("take me to dashboard", "Redirecting you to your dashboard.", "/dashboard"),
		list("how to prevent diabetes", "Ways to lower your diabetes risk:",
			"Maintain healthy BMI (18.5-24.9)",
			"Exercise 150 minutes per week",
			"Eat balanced diet with whole grains",
			"Reduce sugar intake",
			"Monitor blood glucose regularly",
			"Manage stress and sleep",
		),
		list("heart health tips", "Habits that keep your heart healthy:",
			"Maintain healthy blood pressure",
			"Keep cholesterol in check",
			"Stop smoking",
			"Exercise regularly",
			"Eat heart-healthy diet (Mediterranean style)",
			"Manage weight",
			"Control stress",
			"Limit alcohol",
		),
	}
}
