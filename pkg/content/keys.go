package content

// Key is a dotted path into the content dictionary.
type Key string

// Onboarding wizard
const (
	KeyFillAllFields      Key = "onboarding.validation.fillAllFields"
	KeyNameInvalid        Key = "onboarding.validation.nameInvalid"
	KeyAgeRange           Key = "onboarding.validation.ageRange"
	KeyPhoneInvalid       Key = "onboarding.validation.phoneInvalid"
	KeyNationalityInvalid Key = "onboarding.validation.nationalityInvalid"
	KeyLocationInvalid    Key = "onboarding.validation.locationInvalid"
	KeyProfessionRequired Key = "onboarding.validation.professionRequired"
	KeyJobTitleRequired   Key = "onboarding.validation.jobTitleRequired"
	KeyExperienceRequired Key = "onboarding.validation.experienceRequired"
	KeyExperienceRange    Key = "onboarding.validation.experienceRange"
	KeySkillsMinimum      Key = "onboarding.validation.skillsMinimum"
	KeyBioMinimum         Key = "onboarding.validation.bioMinimum"
	KeyResumeRequired     Key = "onboarding.validation.resumeRequired"
	KeyResumeInvalid      Key = "onboarding.validation.resumeInvalid"
	KeyPictureRequired    Key = "onboarding.validation.pictureRequired"
	KeyPictureInvalid     Key = "onboarding.validation.pictureInvalid"
	KeyMediaExclusive     Key = "onboarding.validation.mediaExclusive"
	KeyMediaTooLong       Key = "onboarding.validation.mediaTooLong"
	KeyInvalidFile        Key = "onboarding.validation.invalidFile"
	KeySubmitFailed       Key = "onboarding.validation.submitFailed"

	KeyNavBack       Key = "onboarding.navigation.back"
	KeyNavContinue   Key = "onboarding.navigation.continue"
	KeyNavSubmit     Key = "onboarding.navigation.submit"
	KeyNavSubmitting Key = "onboarding.navigation.submitting"
	KeyProgress      Key = "onboarding.progress"

	KeyCompleteTitle   Key = "onboardingComplete.title"
	KeyCompleteMessage Key = "onboardingComplete.message"
)

// Media recorders
const (
	KeyRecorderPermissionDenied  Key = "recorder.permissionDenied"
	KeyRecorderMicDenied         Key = "recorder.microphoneDenied"
	KeyRecorderDeviceUnavailable Key = "recorder.deviceUnavailable"
	KeyRecorderRecording         Key = "recorder.recording"
	KeyRecorderMaxDuration       Key = "recorder.maxDuration"
)

// Recruiter dashboard
const (
	KeyDashboardNoMatches      Key = "dashboard.empty.noMatches"
	KeyDashboardNoMatchesHint  Key = "dashboard.empty.noMatchesHint"
	KeyDashboardNoCandidates   Key = "dashboard.empty.noCandidates"
	KeyDashboardLoadMore       Key = "dashboard.loadMore"
	KeyDashboardLoading        Key = "dashboard.loading"
	KeyDashboardLoginToSeeMore Key = "dashboard.loginToSeeMore"
	KeyDashboardEndOfList      Key = "dashboard.endOfList"
	KeyStatsTotalCandidates    Key = "dashboard.stats.totalCandidates"
	KeyStatsSkillsAvailable    Key = "dashboard.stats.skillsAvailable"
	KeyStatsLocations          Key = "dashboard.stats.locations"
)

// API errors
const (
	KeyErrCandidateNotFound Key = "api.errors.candidateNotFound"
	KeyErrProfileNotFound   Key = "api.errors.profileNotFound"
	KeyErrProfileExists     Key = "api.errors.profileExists"
	KeyErrRoleExists        Key = "api.errors.roleExists"
	KeyErrInvalidRole       Key = "api.errors.invalidRole"
	KeyErrLoginRequired     Key = "api.errors.loginRequired"
	KeyErrRecruiterOnly     Key = "api.errors.recruiterOnly"
	KeyErrCandidateOnly     Key = "api.errors.candidateOnly"
	KeyErrUploadTooLarge    Key = "api.errors.uploadTooLarge"
	KeyErrInvalidFilter     Key = "api.errors.invalidFilter"
	KeyErrTooManyUploads    Key = "api.errors.tooManyUploads"
)
